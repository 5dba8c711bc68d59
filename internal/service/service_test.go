package service

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"

	"github.com/stretchr/testify/require"
)

// withClock pins timeNow for the rest of the test.
func withClock(t *testing.T, now time.Time) {
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func claimsFor(u *model.User) *Claims {
	return &Claims{ID: u.ID, Email: u.Email, Firstname: u.Firstname, Lastname: u.Lastname, Gender: u.Gender}
}

var (
	alice = &Claims{ID: "alice", Email: "alice@x.com", Firstname: "Alice", Lastname: "A", Gender: "f"}
	bob   = &Claims{ID: "bob", Email: "bob@x.com", Firstname: "Bob", Lastname: "B", Gender: "m"}
)

func mustBoard(t *testing.T, s *Boards, caller *Claims, name string) *model.Board {
	b, err := s.Create(context.Background(), caller, BoardInput{Name: name})
	require.NoError(t, err)
	return b
}
