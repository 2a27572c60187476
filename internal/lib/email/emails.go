package email

// SendArticlePublishedEmail notifies an author that their article is live.
func (c *Client) SendArticlePublishedEmail(to, authorName, articleTitle string) error {
	data := map[string]string{
		"AuthorName":   authorName,
		"ArticleTitle": articleTitle,
	}

	return c.SendEmail(
		to,
		"Your article is now live",
		TemplateArticlePublished,
		data,
	)
}
