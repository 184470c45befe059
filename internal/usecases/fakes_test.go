package usecases

import (
	"context"
	"strconv"
	"time"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
)

type fakeUserStore struct {
	users  map[int64]*entities.User
	tokens *fakeTokenStore
	nextID int64
}

func newFakeUserStore(tokens *fakeTokenStore) *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*entities.User), tokens: tokens, nextID: 1}
}

func (s *fakeUserStore) active() []*entities.User {
	out := []*entities.User{}
	for _, u := range s.users {
		if u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	return out
}

func (s *fakeUserStore) FindBy(_ context.Context, field interfaces.UserLookupField, value string) (*entities.User, error) {
	for _, u := range s.active() {
		switch field {
		case interfaces.LookupByUsername:
			if u.Username == value {
				return u, nil
			}
		case interfaces.LookupByEmail:
			if u.Email == value {
				return u, nil
			}
		case interfaces.LookupByPhone:
			if u.Phone == value {
				return u, nil
			}
		case interfaces.LookupByID:
			if strconv.FormatInt(u.ID, 10) == value {
				return u, nil
			}
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*entities.User, error) {
	for _, u := range s.active() {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Register(ctx context.Context, user entities.User, sign interfaces.SignFunc) (entities.User, string, error) {
	if existing, _ := s.FindByUsernameOrEmail(ctx, user.Username, user.Email); existing != nil {
		return entities.User{}, "", interfaces.ErrConflict
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = &user

	token, err := sign(user)
	if err != nil {
		return entities.User{}, "", err
	}
	if s.tokens != nil {
		_ = s.tokens.Create(ctx, token)
	}
	return user, token, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, profile entities.Profile) (*entities.User, error) {
	u, ok := s.users[profile.ID]
	if !ok || u.DeletedAt != nil {
		return nil, interfaces.ErrNotFound
	}
	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	u.Username = profile.Username
	u.Email = profile.Email
	u.Phone = profile.Phone
	u.Title = profile.Title
	u.Image = profile.Image
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	for _, u := range s.active() {
		if u.Email == email {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (s *fakeUserStore) SoftDelete(_ context.Context, id int64) error {
	u, ok := s.users[id]
	if !ok || u.DeletedAt != nil {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

type fakeTokenStore struct {
	revoked map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{revoked: make(map[string]bool)}
}

func (s *fakeTokenStore) Create(_ context.Context, token string) error {
	if _, ok := s.revoked[token]; !ok {
		s.revoked[token] = false
	}
	return nil
}

func (s *fakeTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

func (s *fakeTokenStore) Revoke(_ context.Context, token string) error {
	s.revoked[token] = true
	return nil
}

type otpRecord struct {
	active    bool
	expiredAt time.Time
}

type fakeOTPStore struct {
	codes map[string]*otpRecord
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]*otpRecord)}
}

func (s *fakeOTPStore) Create(_ context.Context, code string, ttl time.Duration) error {
	s.codes[code] = &otpRecord{active: true, expiredAt: time.Now().Add(ttl)}
	return nil
}

func (s *fakeOTPStore) usable(code string) bool {
	rec, ok := s.codes[code]
	return ok && rec.active && time.Now().Before(rec.expiredAt)
}

func (s *fakeOTPStore) IsUsable(_ context.Context, code string) (bool, error) {
	return s.usable(code), nil
}

func (s *fakeOTPStore) Consume(_ context.Context, code string) (bool, error) {
	if !s.usable(code) {
		return false, nil
	}
	s.codes[code].active = false
	return true, nil
}

type sentMail struct {
	to      entities.User
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to entities.User, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
