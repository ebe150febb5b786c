package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/storage"
)

type fakeAuth struct {
	loginUser  *platform.LoginUser
	loginErr   error
	logoutErr  error
	current    *platform.LoginUser
	currentErr error

	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*platform.LoginUser, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) GetLoginUser(ctx context.Context) (*platform.LoginUser, error) {
	return f.current, f.currentErr
}

func newTestStore(api *fakeAuth) (*Store, *storage.FileStore) {
	st := storage.NewMemStore()
	return NewStore(api, st, nil), st
}

func TestLoginPersistsSession(t *testing.T) {
	api := &fakeAuth{loginUser: &platform.LoginUser{ID: 2, Nickname: "公司管理员", UserRole: "companyAdmin", CompanyID: 1, Token: "jwt"}}
	s, st := newTestStore(api)

	ok, err := s.Login(context.Background(), "company1", "pwd123")
	require.NoError(t, err)
	require.True(t, ok)

	snap := s.Snapshot()
	assert.True(t, snap.LoggedIn)
	assert.Equal(t, "company1", snap.Username, "username falls back to the typed one")
	assert.Equal(t, RoleCompanyAdmin, snap.Role)
	assert.Equal(t, "jwt", s.Token())

	marker, _, _ := st.Get(storage.KeyIsLoggedIn)
	assert.Equal(t, "true", marker)
	raw, ok, _ := st.Get(storage.KeyUserInfo)
	require.True(t, ok)
	assert.Contains(t, raw, `"userRole":"company_admin"`)
}

func TestLoginWithoutPayload(t *testing.T) {
	s, st := newTestStore(&fakeAuth{})

	ok, err := s.Login(context.Background(), "x", "y")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.IsLoggedIn())

	_, exists, _ := st.Get(storage.KeyUserInfo)
	assert.False(t, exists)
}

func TestLoginErrorPropagates(t *testing.T) {
	rejected := errors.NewBusinessError("密码错误", 1, false)
	s, _ := newTestStore(&fakeAuth{loginErr: rejected})

	ok, err := s.Login(context.Background(), "admin", "bad")
	assert.False(t, ok)
	assert.ErrorIs(t, err, rejected)
}

func TestLogoutAlwaysClears(t *testing.T) {
	api := &fakeAuth{
		loginUser: &platform.LoginUser{ID: 1, Username: "admin", UserRole: "admin"},
		logoutErr: fmt.Errorf("network down"),
	}
	s, st := newTestStore(api)
	_, err := s.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	s.Logout(context.Background())

	assert.Equal(t, 1, api.logoutCalls)
	assert.False(t, s.IsLoggedIn())
	_, exists, _ := st.Get(storage.KeyIsLoggedIn)
	assert.False(t, exists)
}

func TestRestoreLoginState(t *testing.T) {
	t.Run("valid snapshot", func(t *testing.T) {
		s, st := newTestStore(&fakeAuth{})
		require.NoError(t, st.Set(storage.KeyUserInfo, `{"id":4,"username":"user1","userRole":"user","token":"t"}`))
		require.NoError(t, st.Set(storage.KeyIsLoggedIn, "true"))

		s.RestoreLoginState()

		snap := s.Snapshot()
		assert.True(t, snap.LoggedIn)
		assert.Equal(t, RoleEmployee, snap.Role, "legacy user role maps to employee")
		assert.Equal(t, int64(4), snap.UserID)
	})

	t.Run("corrupt snapshot clears", func(t *testing.T) {
		s, st := newTestStore(&fakeAuth{})
		require.NoError(t, st.Set(storage.KeyUserInfo, `{not json`))
		require.NoError(t, st.Set(storage.KeyIsLoggedIn, "true"))

		assert.NotPanics(t, s.RestoreLoginState)
		assert.False(t, s.IsLoggedIn())

		_, exists, _ := st.Get(storage.KeyUserInfo)
		assert.False(t, exists)
		_, exists, _ = st.Get(storage.KeyIsLoggedIn)
		assert.False(t, exists)
	})

	t.Run("marker required", func(t *testing.T) {
		s, st := newTestStore(&fakeAuth{})
		require.NoError(t, st.Set(storage.KeyUserInfo, `{"id":1,"userRole":"admin"}`))

		s.RestoreLoginState()
		assert.False(t, s.IsLoggedIn())
	})

	t.Run("memory wins", func(t *testing.T) {
		api := &fakeAuth{loginUser: &platform.LoginUser{ID: 1, Username: "admin", UserRole: "admin"}}
		s, st := newTestStore(api)
		_, err := s.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)
		require.NoError(t, st.Set(storage.KeyUserInfo, `{"id":9,"userRole":"hr"}`))

		s.RestoreLoginState()
		assert.Equal(t, int64(1), s.Snapshot().UserID)
	})
}

func TestFetchCurrentUser(t *testing.T) {
	t.Run("refreshes and keeps token", func(t *testing.T) {
		api := &fakeAuth{
			loginUser: &platform.LoginUser{ID: 3, Username: "hr1", UserRole: "hr", Token: "tok"},
			current:   &platform.LoginUser{ID: 3, Username: "hr1", Nickname: "HR员工", UserRole: "hr"},
		}
		s, _ := newTestStore(api)
		_, err := s.Login(context.Background(), "hr1", "pwd123")
		require.NoError(t, err)

		require.NoError(t, s.FetchCurrentUser(context.Background()))
		assert.Equal(t, "HR员工", s.Snapshot().Nickname)
		assert.Equal(t, "tok", s.Token())
	})

	t.Run("failure clears", func(t *testing.T) {
		api := &fakeAuth{
			loginUser:  &platform.LoginUser{ID: 3, Username: "hr1", UserRole: "hr"},
			currentErr: errors.NewSessionExpiredError("未登录", 40100, 200),
		}
		s, _ := newTestStore(api)
		_, err := s.Login(context.Background(), "hr1", "pwd123")
		require.NoError(t, err)

		err = s.FetchCurrentUser(context.Background())
		assert.True(t, errors.IsSessionExpired(err))
		assert.False(t, s.IsLoggedIn())
	})
}

func TestPersistFailureRollsBack(t *testing.T) {
	api := &fakeAuth{loginUser: &platform.LoginUser{ID: 1, Username: "admin", UserRole: "admin"}}
	s := NewStore(api, failingStore{}, nil)

	ok, err := s.Login(context.Background(), "admin", "admin123")
	assert.False(t, ok)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStateWriteFailed))
	assert.False(t, s.IsLoggedIn())
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(string, string) error {
	return errors.New(errors.ErrCodeStateWriteFailed, "read-only")
}
func (failingStore) Remove(string) error { return nil }
