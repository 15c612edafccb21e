package model

import "time"

// ESArticleIndexName 文章搜索索引名
const ESArticleIndexName = "blog_articles"

// ESArticle 文章的Elasticsearch文档
type ESArticle struct {
	ID           string    `json:"id"`
	ArticleID    uint      `json:"article_id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Summary      string    `json:"summary"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	AuthorID     uint      `json:"author_id"`
	Status       string    `json:"status"`
	Kind         string    `json:"kind"`
	Tags         []string  `json:"tags"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ESIndexName 索引名
func (ESArticle) ESIndexName() string {
	return ESArticleIndexName
}

// ESMapping 索引mapping
func (ESArticle) ESMapping() string {
	return `{
  "mappings": {
    "properties": {
      "article_id":    { "type": "long" },
      "title":         { "type": "text" },
      "body":          { "type": "text" },
      "summary":       { "type": "text" },
      "category_id":   { "type": "long" },
      "category_name": { "type": "keyword" },
      "author_id":     { "type": "long" },
      "status":        { "type": "keyword" },
      "kind":          { "type": "keyword" },
      "tags":          { "type": "keyword" },
      "published_at":  { "type": "date" },
      "created_at":    { "type": "date" },
      "updated_at":    { "type": "date" }
    }
  }
}`
}
