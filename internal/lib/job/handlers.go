package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleArticlePublishedTask notifies an author that their article went live.
func (j *JobService) handleArticlePublishedTask(ctx context.Context, t *asynq.Task) error {
	var p ArticlePublishedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal article published payload: %w", err)
	}

	j.logger.Info().
		Str("type", "article_published").
		Str("article_id", p.ArticleID).
		Msg("Processing article published task")

	if p.AuthorEmail == "" {
		// Nothing to notify; treat as done rather than retrying.
		j.logger.Warn().
			Str("article_id", p.ArticleID).
			Msg("Author has no email, skipping publish notification")
		return nil
	}

	if j.email == nil {
		j.logger.Warn().
			Str("article_id", p.ArticleID).
			Msg("Outbound email disabled, skipping publish notification")
		return nil
	}

	err := j.email.SendArticlePublishedEmail(p.AuthorEmail, p.AuthorName, p.ArticleTitle)
	if err != nil {
		j.logger.Error().
			Str("type", "article_published").
			Str("article_id", p.ArticleID).
			Err(err).
			Msg("Failed to send publish notification")
		return err
	}

	j.logger.Info().
		Str("type", "article_published").
		Str("article_id", p.ArticleID).
		Msg("Successfully sent publish notification")

	return nil
}
