package store

import (
	"context"
	"errors"
	"testing"
)

func appendEvent(t *testing.T, repo EventRepo, purpose, model string, in, out int, ok bool) {
	t.Helper()
	err := repo.AppendLLMRequest(context.Background(), LLMRequestEventData{
		Provider:     "gemini",
		Model:        model,
		Purpose:      purpose,
		InputTokens:  in,
		OutputTokens: out,
		LatencyMs:    120,
		Success:      ok,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestAppendAndQueryEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	appendEvent(t, repo, "question-gen", "gemini-3-flash-preview", 100, 50, true)
	appendEvent(t, repo, "evaluation", "gemini-3-flash-preview", 200, 30, true)
	appendEvent(t, repo, "question-gen", "gemini-3-flash-preview", 110, 55, false)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ID >= all[1].ID || all[1].ID >= all[2].ID {
		t.Error("events not in ascending id order")
	}
	if all[0].Purpose != "question-gen" || all[1].Purpose != "evaluation" {
		t.Errorf("purposes = %q, %q", all[0].Purpose, all[1].Purpose)
	}
}

func TestQueryEventsFiltered(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	appendEvent(t, repo, "question-gen", "m", 1, 1, true)
	appendEvent(t, repo, "evaluation", "m", 1, 1, true)
	appendEvent(t, repo, "question-gen", "m", 1, 1, true)

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited len = %d, want 1", len(limited))
	}

	newest, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Descending: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(newest) != 1 || newest[0].ID <= limited[0].ID {
		t.Errorf("descending query returned id %d, want the newest event", newest[0].ID)
	}
}

func TestGetLLMEvent(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	appendEvent(t, repo, "doubt-search", "gemini-3-flash-preview", 500, 200, true)
	all, _ := repo.QueryLLMEvents(ctx, QueryOpts{})

	ev, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ev.Purpose != "doubt-search" || ev.InputTokens != 500 {
		t.Errorf("event = %+v", ev)
	}

	_, err = repo.GetLLMEvent(ctx, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing event err = %v, want ErrNotFound", err)
	}
}

func TestUsageAggregation(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	appendEvent(t, repo, "question-gen", "flash", 100, 50, true)
	appendEvent(t, repo, "question-gen", "flash", 100, 50, false)
	appendEvent(t, repo, "evaluation", "flash", 10, 5, true)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("rows = %d, want 2", len(byPurpose))
	}
	// Rows are ordered by key: evaluation first.
	qg := byPurpose[1]
	if qg.Key != "question-gen" || qg.Requests != 2 || qg.InputTokens != 200 || qg.Failures != 1 {
		t.Errorf("question-gen row = %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Requests != 3 {
		t.Errorf("model rows = %+v", byModel)
	}
}
