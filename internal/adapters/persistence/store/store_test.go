package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"esavers-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	return fs, dir
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		fs, _ := newFileStore(t)
		_, err := fs.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})

	t.Run("Put then Get", func(t *testing.T) {
		fs, _ := newFileStore(t)
		require.NoError(t, fs.Put(ctx, "k", []byte(`{"a":1}`)))

		data, err := fs.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(data))
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		fs, _ := newFileStore(t)
		require.NoError(t, fs.Put(ctx, "k", []byte("x")))
		require.NoError(t, fs.Delete(ctx, "k"))
		require.NoError(t, fs.Delete(ctx, "k"))
	})
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store starts with initial state", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		state := st.State()
		assert.Nil(t, state.CurrentUser)
		assert.Empty(t, state.Users)
		assert.False(t, state.DarkMode)
	})

	t.Run("Snapshot survives a restart", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		st.AddUser(ctx, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleMember})
		st.AddSavingsRequest(ctx, domain.SavingsRequest{ID: "s1", UserID: "u1", Amount: 5000, Status: domain.StatusPending})

		reloaded := New(ctx, fs)
		state := reloaded.State()
		require.Len(t, state.Users, 1)
		assert.Equal(t, "alice@example.com", state.Users[0].Email)
		require.Len(t, state.SavingsRequests, 1)
		assert.Equal(t, domain.StatusPending, state.SavingsRequests[0].Status)
	})

	t.Run("Corrupt blob falls back to initial state", func(t *testing.T) {
		fs, dir := newFileStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, StateKey+".json"), []byte("{not json"), 0o644))

		st := New(ctx, fs)
		assert.Empty(t, st.State().Users)
	})

	t.Run("Shape-incompatible blob falls back to initial state", func(t *testing.T) {
		fs, _ := newFileStore(t)
		bad := `{"users":[{"id":"u1","role":"superuser"}]}`
		require.NoError(t, fs.Put(ctx, StateKey, []byte(bad)))

		st := New(ctx, fs)
		assert.Empty(t, st.State().Users)
	})
}

func TestStoreMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("Update preserves position of unrelated entries", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		st.AddSavingsRequest(ctx, domain.SavingsRequest{ID: "s1", UserID: "u1", Amount: 1, Status: domain.StatusPending})
		st.AddSavingsRequest(ctx, domain.SavingsRequest{ID: "s2", UserID: "u1", Amount: 2, Status: domain.StatusPending})
		st.AddSavingsRequest(ctx, domain.SavingsRequest{ID: "s3", UserID: "u1", Amount: 3, Status: domain.StatusPending})

		err := st.UpdateSavingsRequest(ctx, domain.SavingsRequest{ID: "s2", UserID: "u1", Amount: 2, Status: domain.StatusApproved})
		require.NoError(t, err)

		state := st.State()
		assert.Equal(t, []string{"s1", "s2", "s3"}, []string{
			state.SavingsRequests[0].ID,
			state.SavingsRequests[1].ID,
			state.SavingsRequests[2].ID,
		})
		assert.Equal(t, domain.StatusApproved, state.SavingsRequests[1].Status)
	})

	t.Run("Update of unknown id fails", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		err := st.UpdateSavingsRequest(ctx, domain.SavingsRequest{ID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrSavingsNotFound)

		err = st.UpdateLoanRequest(ctx, domain.LoanRequest{ID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})

	t.Run("Readers get a copy, not live state", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)
		st.AddUser(ctx, domain.User{ID: "u1", Name: "Alice", Role: domain.RoleMember})

		state := st.State()
		state.Users[0].Name = "Mallory"

		assert.Equal(t, "Alice", st.State().Users[0].Name)
	})

	t.Run("ToggleDarkMode flips and persists", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		assert.True(t, st.ToggleDarkMode(ctx))
		assert.False(t, st.ToggleDarkMode(ctx))
		assert.True(t, st.ToggleDarkMode(ctx))

		reloaded := New(ctx, fs)
		assert.True(t, reloaded.State().DarkMode)
	})

	t.Run("SetCurrentUser sets and clears", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		user := domain.User{ID: "u1", Name: "Alice", Role: domain.RoleAdmin}
		st.SetCurrentUser(ctx, &user)
		require.NotNil(t, st.State().CurrentUser)
		assert.Equal(t, "u1", st.State().CurrentUser.ID)

		st.SetCurrentUser(ctx, nil)
		assert.Nil(t, st.State().CurrentUser)
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("Strict refuses a second decision", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)
		st.AddSavingsRequest(ctx, domain.SavingsRequest{ID: "s1", UserID: "u1", Amount: 1, Status: domain.StatusPending})

		decided, err := st.DecideSavingsRequest(ctx, "s1", domain.StatusApproved, true)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, decided.Status)

		_, err = st.DecideSavingsRequest(ctx, "s1", domain.StatusRejected, true)
		assert.ErrorIs(t, err, domain.ErrRequestDecided)
		assert.Equal(t, domain.StatusApproved, st.State().SavingsRequests[0].Status)
	})

	t.Run("Permissive re-decides", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)
		st.AddLoanRequest(ctx, domain.LoanRequest{ID: "l1", UserID: "u1", Amount: 1, Status: domain.StatusRejected, RepaymentPeriod: 1})

		decided, err := st.DecideLoanRequest(ctx, "l1", domain.StatusApproved, false)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, decided.Status)
	})

	t.Run("Unknown ids fail", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)

		_, err := st.DecideSavingsRequest(ctx, "ghost", domain.StatusApproved, true)
		assert.ErrorIs(t, err, domain.ErrSavingsNotFound)

		_, err = st.DecideLoanRequest(ctx, "ghost", domain.StatusApproved, true)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})

	t.Run("Concurrent strict decisions settle exactly once", func(t *testing.T) {
		fs, _ := newFileStore(t)
		st := New(ctx, fs)
		st.AddSavingsRequest(ctx, domain.SavingsRequest{ID: "s1", UserID: "u1", Amount: 1, Status: domain.StatusPending})

		const n = 16
		results := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			status := domain.StatusApproved
			if i%2 == 1 {
				status = domain.StatusRejected
			}
			wg.Add(1)
			go func(status domain.RequestStatus) {
				defer wg.Done()
				_, err := st.DecideSavingsRequest(ctx, "s1", status, true)
				results <- err
			}(status)
		}
		wg.Wait()
		close(results)

		var won, refused int
		for err := range results {
			switch {
			case err == nil:
				won++
			case errors.Is(err, domain.ErrRequestDecided):
				refused++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, n-1, refused)
		assert.True(t, st.State().SavingsRequests[0].Status.Decided())
	})
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	fs, _ := newFileStore(t)
	st := New(ctx, fs)
	st.AddUser(ctx, domain.User{ID: "u1", Name: "Alice", Email: "a@b.c", Role: domain.RoleMember})

	data, err := st.Export()
	require.NoError(t, err)

	decoded, err := decodeState(data)
	require.NoError(t, err)
	require.Len(t, decoded.Users, 1)
	assert.Equal(t, "u1", decoded.Users[0].ID)
}
