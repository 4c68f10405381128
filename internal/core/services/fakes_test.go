package services

import (
	"context"
	"strings"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// In-memory repository fakes shared by the service tests
// ============================================================

type fakeUserRepo struct {
	users     map[string]*models.User
	getErr    error
	updateErr error
	updates   []map[string]interface{}
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByQRCode(_ context.Context, qrCode string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, user := range r.users {
		if user.QRCode == qrCode {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FirstOrCreate(_ context.Context, user *models.User) (*models.User, error) {
	if existing, ok := r.users[user.ID]; ok {
		return existing, nil
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, fields)

	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "role":
			user.Role = value.(string)
		case "loyalty_stamps":
			user.LoyaltyStamps = value.(int)
		case "last_wheel_spin":
			spin := value.(time.Time)
			user.LastWheelSpin = &spin
		case "active_prize":
			if value == nil {
				user.ActivePrize = nil
			} else {
				prize := value.(string)
				user.ActivePrize = &prize
			}
		}
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int, search string) ([]*models.User, int64, error) {
	var matched []*models.User
	for _, user := range r.users {
		if search == "" || strings.Contains(user.Email, search) || strings.Contains(user.Name, search) {
			matched = append(matched, user)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeIdentityRepo struct {
	identities map[string]*models.Identity // keyed by email
	created    []*models.Identity
}

func newFakeIdentityRepo(identities ...*models.Identity) *fakeIdentityRepo {
	repo := &fakeIdentityRepo{identities: make(map[string]*models.Identity)}
	for _, identity := range identities {
		repo.identities[identity.Email] = identity
	}
	return repo
}

func (r *fakeIdentityRepo) Create(_ context.Context, identity *models.Identity) error {
	r.identities[identity.Email] = identity
	r.created = append(r.created, identity)
	return nil
}

func (r *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*models.Identity, error) {
	identity, ok := r.identities[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return identity, nil
}

func (r *fakeIdentityRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.identities[email]
	return ok, nil
}

type fakeSessionRepo struct {
	records map[string]*models.SessionRecord // keyed by token hash
	getErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{records: make(map[string]*models.SessionRecord)}
}

func (r *fakeSessionRepo) Create(_ context.Context, record *models.SessionRecord) error {
	r.records[record.TokenHash] = record
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.SessionRecord, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	record, ok := r.records[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeSessionRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if record, ok := r.records[tokenHash]; ok {
		now := time.Now()
		record.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUserID(_ context.Context, userID string) error {
	now := time.Now()
	for _, record := range r.records {
		if record.UserID == userID {
			record.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var purged int64
	for hash, record := range r.records {
		if record.IsExpired() || record.IsRevoked() {
			delete(r.records, hash)
			purged++
		}
	}
	return purged, nil
}

type fakePromotionRepo struct {
	cfg    *models.PromotionConfig
	getErr error
	saved  *models.PromotionConfig
}

func (r *fakePromotionRepo) Get(_ context.Context) (*models.PromotionConfig, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.cfg, nil
}

func (r *fakePromotionRepo) Save(_ context.Context, cfg *models.PromotionConfig) error {
	r.saved = cfg
	r.cfg = cfg
	return nil
}

type fakeStampRepo struct {
	events    []*models.StampEvent
	createErr error
}

func (r *fakeStampRepo) Create(_ context.Context, event *models.StampEvent) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeStampRepo) ListByUser(_ context.Context, userID string, limit int) ([]*models.StampEvent, error) {
	var matched []*models.StampEvent
	for _, event := range r.events {
		if event.UserID == userID {
			matched = append(matched, event)
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
