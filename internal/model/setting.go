package model

// BlogSettings 站点设置模型
// 单例记录: 全表至多一行, 由服务层在写入时保证
type BlogSettings struct {
	Base
	SiteName            string `gorm:"type:varchar(200);not null;default:''" json:"site_name"`
	SiteDescription     string `gorm:"type:text" json:"site_description"`
	SiteSeoDescription  string `gorm:"type:text" json:"site_seo_description"`
	SiteKeywords        string `gorm:"type:text" json:"site_keywords"`
	ArticleSubLength    int    `gorm:"not null;default:300" json:"article_sub_length"`
	SidebarArticleCount int    `gorm:"not null;default:10" json:"sidebar_article_count"`
	SidebarCommentCount int    `gorm:"not null;default:5" json:"sidebar_comment_count"`
	ShowGoogleAdsense   bool   `gorm:"not null;default:false" json:"show_google_adsense"`
	GoogleAdsenseCodes  string `gorm:"type:text" json:"google_adsense_codes"`
	OpenSiteComment     bool   `gorm:"not null;default:true" json:"open_site_comment"`
	BeianCode           string `gorm:"type:varchar(2000)" json:"beian_code"`
	AnalyticsCode       string `gorm:"type:text" json:"analytics_code"`
	ShowGonganCode      bool   `gorm:"not null;default:false" json:"show_gongan_code"`
	GonganBeianCode     string `gorm:"type:text" json:"gongan_beian_code"`
	ResourcePath        string `gorm:"type:varchar(300);not null;default:'/var/www/resource/'" json:"resource_path"`
}

// TableName 指定表名
func (BlogSettings) TableName() string {
	return "blog_settings"
}
