package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskArticlePublished is the task type enqueued when an article
	// transitions to published.
	TaskArticlePublished = "article:published"
)

// ArticlePublishedPayload is the JSON payload for the publish notification task.
type ArticlePublishedPayload struct {
	ArticleID    string `json:"article_id"`
	ArticleTitle string `json:"article_title"`
	AuthorEmail  string `json:"author_email"`
	AuthorName   string `json:"author_name"`
}

// NewArticlePublishedTask constructs the publish notification task.
//
// The task retries up to 3 times, runs on the "default" queue, and is
// killed if the handler takes longer than 30 seconds.
func NewArticlePublishedTask(articleID, title, authorEmail, authorName string) (*asynq.Task, error) {
	payload, err := json.Marshal(ArticlePublishedPayload{
		ArticleID:    articleID,
		ArticleTitle: title,
		AuthorEmail:  authorEmail,
		AuthorName:   authorName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskArticlePublished,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
