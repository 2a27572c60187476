package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateArticlePublished corresponds to templates/emails/article_published.html
	TemplateArticlePublished Template = "article_published"
)
