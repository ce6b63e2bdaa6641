package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/majilabs/oasis/internal/config"
	"go.uber.org/zap"
)

func TestClientDisabledWithoutAPIKey(t *testing.T) {
	client := NewClient(config.Config{}, zap.NewNop(), nil)

	_, err := client.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
