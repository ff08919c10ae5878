package services

import (
	"context"
	"sync"
	"testing"

	"esavers-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsService_Submit(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewSavingsService(st, newTestConfig())
	seedMember(t, st, "u1", "Alice", "alice@example.com")

	t.Run("New request starts pending", func(t *testing.T) {
		req, err := svc.Submit(ctx, "u1", &SubmitSavingsInput{Amount: 5000, Notes: "march savings"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, req.Status)
		assert.NotEmpty(t, req.ID)
		assert.False(t, req.Date.IsZero())
	})

	t.Run("Unknown user is rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, "ghost", &SubmitSavingsInput{Amount: 5000})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestSavingsService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve is monotonic", func(t *testing.T) {
		st := newTestStore(t)
		svc := NewSavingsService(st, newTestConfig())
		seedMember(t, st, "u1", "Alice", "alice@example.com")

		req, err := svc.Submit(ctx, "u1", &SubmitSavingsInput{Amount: 5000})
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, approved.Status)

		// repeated reads keep the terminal status
		assert.Equal(t, domain.StatusApproved, st.State().FindSavings(req.ID).Status)
		assert.Equal(t, domain.StatusApproved, st.State().FindSavings(req.ID).Status)
	})

	t.Run("Strict mode refuses re-deciding", func(t *testing.T) {
		st := newTestStore(t)
		svc := NewSavingsService(st, newTestConfig())
		seedMember(t, st, "u1", "Alice", "alice@example.com")

		req, err := svc.Submit(ctx, "u1", &SubmitSavingsInput{Amount: 5000})
		require.NoError(t, err)

		_, err = svc.Reject(ctx, req.ID)
		require.NoError(t, err)

		_, err = svc.Approve(ctx, req.ID)
		assert.ErrorIs(t, err, domain.ErrRequestDecided)
		assert.Equal(t, domain.StatusRejected, st.State().FindSavings(req.ID).Status)
	})

	t.Run("Permissive mode allows correction", func(t *testing.T) {
		st := newTestStore(t)
		cfg := newTestConfig()
		cfg.Lifecycle.Strict = false
		svc := NewSavingsService(st, cfg)
		seedMember(t, st, "u1", "Alice", "alice@example.com")

		req, err := svc.Submit(ctx, "u1", &SubmitSavingsInput{Amount: 5000})
		require.NoError(t, err)

		_, err = svc.Reject(ctx, req.ID)
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, approved.Status)
	})

	t.Run("Racing admins decide once", func(t *testing.T) {
		st := newTestStore(t)
		svc := NewSavingsService(st, newTestConfig())
		seedMember(t, st, "u1", "Alice", "alice@example.com")

		req, err := svc.Submit(ctx, "u1", &SubmitSavingsInput{Amount: 5000})
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make(chan error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Approve(ctx, req.ID)
			results <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Reject(ctx, req.ID)
			results <- err
		}()
		wg.Wait()
		close(results)

		var won, refused int
		for err := range results {
			if err == nil {
				won++
			} else {
				assert.ErrorIs(t, err, domain.ErrRequestDecided)
				refused++
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, 1, refused)
	})

	t.Run("Unknown request", func(t *testing.T) {
		st := newTestStore(t)
		svc := NewSavingsService(st, newTestConfig())

		_, err := svc.Approve(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrSavingsNotFound)
	})
}

func TestSavingsService_Lists(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewSavingsService(st, newTestConfig())
	seedMember(t, st, "u1", "Alice", "alice@example.com")
	seedMember(t, st, "u2", "Bob", "bob@example.com")

	r1, err := svc.Submit(ctx, "u1", &SubmitSavingsInput{Amount: 1000})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "u2", &SubmitSavingsInput{Amount: 2000})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, r1.ID)
	require.NoError(t, err)

	assert.Len(t, svc.ListForUser(ctx, "u1"), 1)
	assert.Len(t, svc.ListPending(ctx), 1)
	assert.Len(t, svc.ListAll(ctx), 2)
}
