package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "both category_id and checklist_id",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithCategoryID(ctx, "normal")
				ctx = WithChecklistID(ctx, "preflight")
				return ctx
			},
			wantKeys: []string{"category_id", "checklist_id"},
		},
		{
			name: "only category_id",
			setupCtx: func() context.Context {
				return WithCategoryID(context.Background(), "normal")
			},
			wantKeys:  []string{"category_id"},
			wantEmpty: []string{"checklist_id"},
		},
		{
			name: "only checklist_id",
			setupCtx: func() context.Context {
				return WithChecklistID(context.Background(), "preflight")
			},
			wantKeys:  []string{"checklist_id"},
			wantEmpty: []string{"category_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"category_id", "checklist_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := tt.setupCtx()

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(ctx).Msg("test")

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := logEntry[key]; !ok {
					t.Errorf("expected %s to be present in log", key)
				}
			}

			for _, key := range tt.wantEmpty {
				if _, ok := logEntry[key]; ok {
					t.Errorf("expected %s to be absent from log", key)
				}
			}
		})
	}
}
