package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
	"project_karcis/internal/usecases"
)

type fakeUserStore struct {
	users  map[int64]*entities.User
	tokens *fakeTokenStore
	nextID int64
	err    error // when set, every call fails with it
}

func newFakeUserStore(tokens *fakeTokenStore) *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*entities.User), tokens: tokens, nextID: 1}
}

func (s *fakeUserStore) add(u entities.User) entities.User {
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = &u
	return u
}

func (s *fakeUserStore) FindBy(_ context.Context, field interfaces.UserLookupField, value string) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.DeletedAt != nil {
			continue
		}
		switch field {
		case interfaces.LookupByID:
			if strconv.FormatInt(u.ID, 10) == value {
				return u, nil
			}
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
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.DeletedAt == nil && (u.Username == username || u.Email == email) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Register(ctx context.Context, user entities.User, sign interfaces.SignFunc) (entities.User, string, error) {
	if s.err != nil {
		return entities.User{}, "", s.err
	}
	if existing, _ := s.FindByUsernameOrEmail(ctx, user.Username, user.Email); existing != nil {
		return entities.User{}, "", interfaces.ErrConflict
	}
	created := s.add(user)
	token, err := sign(created)
	if err != nil {
		return entities.User{}, "", err
	}
	_ = s.tokens.Create(ctx, token)
	return created, token, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, profile entities.Profile) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
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
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if u.DeletedAt == nil && u.Email == email {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (s *fakeUserStore) SoftDelete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
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
	err     error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{revoked: make(map[string]bool)}
}

func (s *fakeTokenStore) Create(_ context.Context, token string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.revoked[token]; !ok {
		s.revoked[token] = false
	}
	return nil
}

func (s *fakeTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[token], nil
}

func (s *fakeTokenStore) Revoke(_ context.Context, token string) error {
	if s.err != nil {
		return s.err
	}
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

type fakeMailer struct {
	sent int
	err  error
}

func (m *fakeMailer) Send(_ context.Context, _ entities.User, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

type fakeBalanceStore struct {
	balances  map[int64]*entities.Balance
	histories []entities.BalanceHistory
}

func newFakeBalanceStore() *fakeBalanceStore {
	return &fakeBalanceStore{balances: make(map[int64]*entities.Balance)}
}

func (s *fakeBalanceStore) Get(_ context.Context, id int64) (*entities.Balance, error) {
	b, ok := s.balances[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return b, nil
}

func (s *fakeBalanceStore) GetByUser(_ context.Context, userID int64) (*entities.Balance, error) {
	for _, b := range s.balances {
		if b.UserID == userID {
			return b, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (s *fakeBalanceStore) Histories(_ context.Context, userID int64) ([]entities.BalanceHistory, error) {
	out := []entities.BalanceHistory{}
	for _, h := range s.histories {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *fakeBalanceStore) Update(_ context.Context, id int64, amount decimal.Decimal) (*entities.Balance, error) {
	b, ok := s.balances[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	s.histories = append(s.histories, entities.BalanceHistory{
		ID:        int64(len(s.histories) + 1),
		UserID:    b.UserID,
		BalanceID: b.ID,
		Balance:   amount,
		TopUp:     entities.TopUpDelta(b.Balance, amount),
		CreatedAt: time.Now(),
	})
	b.Balance = amount
	b.UpdatedAt = time.Now()
	return b, nil
}

type fakeAmenityStore struct {
	amenities map[int64]*entities.Amenity
	nextID    int64
}

func newFakeAmenityStore() *fakeAmenityStore {
	return &fakeAmenityStore{amenities: make(map[int64]*entities.Amenity), nextID: 1}
}

func (s *fakeAmenityStore) GetAll(_ context.Context) ([]entities.Amenity, error) {
	out := []entities.Amenity{}
	for _, a := range s.amenities {
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeAmenityStore) FindByID(_ context.Context, id int64) (*entities.Amenity, error) {
	a, ok := s.amenities[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (s *fakeAmenityStore) Create(_ context.Context, amenity entities.Amenity) (*entities.Amenity, error) {
	amenity.ID = s.nextID
	s.nextID++
	s.amenities[amenity.ID] = &amenity
	return &amenity, nil
}

func (s *fakeAmenityStore) Update(_ context.Context, amenity entities.Amenity) (*entities.Amenity, error) {
	if _, ok := s.amenities[amenity.ID]; !ok {
		return nil, interfaces.ErrNotFound
	}
	s.amenities[amenity.ID] = &amenity
	return &amenity, nil
}

func (s *fakeAmenityStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.amenities[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(s.amenities, id)
	return nil
}

// testEnv bundles a router wired with fake stores.
type testEnv struct {
	router    *gin.Engine
	users     *fakeUserStore
	tokens    *fakeTokenStore
	otps      *fakeOTPStore
	mailer    *fakeMailer
	balances  *fakeBalanceStore
	amenities *fakeAmenityStore
	signer    *usecases.TokenSigner
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	tokens := newFakeTokenStore()
	users := newFakeUserStore(tokens)
	otps := newFakeOTPStore()
	mailer := &fakeMailer{}
	balances := newFakeBalanceStore()
	amenities := newFakeAmenityStore()

	signer := usecases.NewTokenSigner("test-secret", time.Hour)
	auth := usecases.NewAuthUsecase(users, tokens, otps, mailer, signer, 5*time.Minute)

	log := zerolog.Nop()
	m := NewMiddleware(signer, users, tokens, log)
	h := NewHandler(auth, users, balances, amenities, log)

	r := gin.New()
	SetupRoutes(r, h, m, log)

	return &testEnv{
		router:    r,
		users:     users,
		tokens:    tokens,
		otps:      otps,
		mailer:    mailer,
		balances:  balances,
		amenities: amenities,
		signer:    signer,
	}
}

// seedUser adds an active user with the given role and returns it together
// with a recorded, unrevoked token.
func (e *testEnv) seedUser(username string, roleID int32) (entities.User, string) {
	user := e.users.add(entities.User{
		FirstName:    "Test",
		LastName:     "User",
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Phone:        "+15550000001",
		Title:        "Mx",
		Image:        username + ".png",
		RoleID:       roleID,
	})
	token, _ := e.signer.Sign(user)
	_ = e.tokens.Create(context.Background(), token)
	return user, token
}
