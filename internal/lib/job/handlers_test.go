package job

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJobService() *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger}
}

func TestArticlePublishedSkipsWhenEmailDisabled(t *testing.T) {
	j := testJobService()

	task, err := NewArticlePublishedTask("art_1", "A Title", "author@example.com", "Ada")
	require.NoError(t, err)

	// No email client configured: the task completes instead of retrying.
	assert.NoError(t, j.handleArticlePublishedTask(context.Background(), task))
}

func TestArticlePublishedSkipsWithoutAuthorEmail(t *testing.T) {
	j := testJobService()

	task, err := NewArticlePublishedTask("art_1", "A Title", "", "Ada")
	require.NoError(t, err)

	assert.NoError(t, j.handleArticlePublishedTask(context.Background(), task))
}

func TestArticlePublishedRejectsMalformedPayload(t *testing.T) {
	j := testJobService()

	task := asynq.NewTask(TaskArticlePublished, []byte("{"))

	assert.Error(t, j.handleArticlePublishedTask(context.Background(), task))
}
