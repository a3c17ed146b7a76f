package anthropic

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

type fakeMessager struct {
	params anthropic.MessageNewParams
	resp   *anthropic.Message
	err    error
}

func (f *fakeMessager) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	f.params = params
	return f.resp, f.err
}

func TestClient_Generate(t *testing.T) {
	fake := &fakeMessager{resp: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "## 리스크 "},
			{Type: "thinking"},
			{Type: "text", Text: "분석"},
		},
	}}
	c := NewClientWithMessager(fake, "", 0.2, 0, zap.NewNop())

	text, err := c.Generate(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "sys"},
		{Role: domain.RoleUser, Content: "ctx"},
		{Role: domain.RoleAssistant, Content: "ack"},
		{Role: domain.RoleUser, Content: "q"},
	})

	require.NoError(t, err)
	assert.Equal(t, "## 리스크 분석", text)
	assert.Equal(t, anthropic.Model(DefaultModel), fake.params.Model)
	assert.EqualValues(t, 800, fake.params.MaxTokens)
	require.Len(t, fake.params.System, 1)
	assert.Equal(t, "sys", fake.params.System[0].Text)
	require.Len(t, fake.params.Messages, 3)
	assert.Equal(t, anthropic.MessageParamRoleUser, fake.params.Messages[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, fake.params.Messages[1].Role)
}

func TestClient_Generate_Error(t *testing.T) {
	fake := &fakeMessager{err: errors.New("overloaded")}
	c := NewClientWithMessager(fake, "claude-3-5-haiku-latest", 0.2, 800, zap.NewNop())

	_, err := c.Generate(context.Background(), nil)

	assert.ErrorContains(t, err, "overloaded")
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", "", 0.2, 800, zap.NewNop())

	assert.Error(t, err)
}
