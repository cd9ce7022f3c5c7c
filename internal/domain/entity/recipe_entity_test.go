package entity

import "testing"

func TestReviewByID(t *testing.T) {
	r := Recipe{Reviews: []Review{
		{ID: "rev-1", AuthorID: "u1"},
		{ID: "rev-2", AuthorID: "u2"},
	}}

	rev := r.ReviewByID("rev-2")
	if rev == nil {
		t.Fatal("expected review rev-2, got nil")
	}
	if rev.AuthorID != "u2" {
		t.Fatalf("expected author u2, got %s", rev.AuthorID)
	}

	if got := r.ReviewByID("rev-9"); got != nil {
		t.Fatalf("expected nil for unknown review, got %+v", got)
	}
}

func TestReviewByIDReturnsMutablePointer(t *testing.T) {
	r := Recipe{Reviews: []Review{{ID: "rev-1"}}}
	rev := r.ReviewByID("rev-1")
	rev.Replies = append(rev.Replies, Reply{ID: "rep-1"})

	if len(r.Reviews[0].Replies) != 1 {
		t.Fatal("reply append through pointer did not reach the aggregate")
	}
}

func TestHasReviewBy(t *testing.T) {
	r := Recipe{Reviews: []Review{{ID: "rev-1", AuthorID: "u1"}}}
	if !r.HasReviewBy("u1") {
		t.Fatal("expected existing author to be found")
	}
	if r.HasReviewBy("u2") {
		t.Fatal("expected unknown author to be absent")
	}
}
