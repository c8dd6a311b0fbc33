// Package adaptertest provides in-memory implementations of the adapter ports
// for use case tests.
package adaptertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// SubscriptionRepository is an in-memory adapter.SubscriptionRepository.
type SubscriptionRepository struct {
	mu   sync.Mutex
	Subs map[uuid.UUID]*entity.Subscription
	Err  error
}

var _ adapter.SubscriptionRepository = (*SubscriptionRepository)(nil)

// NewSubscriptionRepository creates an empty repository seeded with subs.
func NewSubscriptionRepository(subs ...*entity.Subscription) *SubscriptionRepository {
	r := &SubscriptionRepository{Subs: make(map[uuid.UUID]*entity.Subscription)}
	for _, s := range subs {
		r.Subs[s.ID] = s
	}
	return r
}

func (r *SubscriptionRepository) Create(_ context.Context, s *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	c := *s
	r.Subs[s.ID] = &c
	return nil
}

func (r *SubscriptionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.Subs[id]
	if !ok {
		return nil, domainerror.ErrSubscriptionNotFound
	}
	c := *s
	return &c, nil
}

func (r *SubscriptionRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	return r.find(userID, false)
}

func (r *SubscriptionRepository) FindActiveByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	return r.find(userID, true)
}

func (r *SubscriptionRepository) find(userID uuid.UUID, activeOnly bool) ([]*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*entity.Subscription, 0)
	for _, s := range r.Subs {
		if s.UserID != userID || (activeOnly && !s.Active) {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SubscriptionRepository) UpdateFields(_ context.Context, id uuid.UUID, fields entity.SubscriptionFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s, ok := r.Subs[id]
	if !ok {
		return domainerror.ErrSubscriptionNotFound
	}
	fields.Apply(s)
	return nil
}

func (r *SubscriptionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Subs[id]; !ok {
		return domainerror.ErrSubscriptionNotFound
	}
	delete(r.Subs, id)
	return nil
}

func (r *SubscriptionRepository) ReassignCategory(_ context.Context, userID uuid.UUID, from, to string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.Subs {
		if s.UserID == userID && s.Category == from {
			s.Category = to
			n++
		}
	}
	return n, nil
}

// NotificationRepository is an in-memory adapter.NotificationRepository.
type NotificationRepository struct {
	mu            sync.Mutex
	Notifications map[uuid.UUID]*entity.Notification
}

var _ adapter.NotificationRepository = (*NotificationRepository)(nil)

// NewNotificationRepository creates a repository seeded with ns.
func NewNotificationRepository(ns ...*entity.Notification) *NotificationRepository {
	r := &NotificationRepository{Notifications: make(map[uuid.UUID]*entity.Notification)}
	for _, n := range ns {
		r.Notifications[n.ID] = n
	}
	return r
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *n
	r.Notifications[n.ID] = &c
	return nil
}

func (r *NotificationRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.Notifications[id]
	if !ok {
		return nil, domainerror.ErrNotificationNotFound
	}
	c := *n
	return &c, nil
}

func (r *NotificationRepository) FindByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Notification, 0)
	for _, n := range r.Notifications {
		if n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NotificationDate.After(out[j].NotificationDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepository) ExistsForBillingDate(_ context.Context, subscriptionID uuid.UUID, billingDate time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.Notifications {
		if n.SubscriptionID != nil && *n.SubscriptionID == subscriptionID &&
			n.BillingDate != nil && n.BillingDate.Equal(billingDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.Notifications[id]
	if !ok {
		return domainerror.ErrNotificationNotFound
	}
	n.MarkRead()
	return nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.Notifications {
		if n.UserID == userID && !n.IsRead {
			n.MarkRead()
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Notifications[id]; !ok {
		return domainerror.ErrNotificationNotFound
	}
	delete(r.Notifications, id)
	return nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.Notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// UserSettingsRepository is an in-memory adapter.UserSettingsRepository.
type UserSettingsRepository struct {
	mu       sync.Mutex
	Settings map[uuid.UUID]*entity.UserSettings
}

var _ adapter.UserSettingsRepository = (*UserSettingsRepository)(nil)

// NewUserSettingsRepository creates a repository seeded with settings.
func NewUserSettingsRepository(settings ...*entity.UserSettings) *UserSettingsRepository {
	r := &UserSettingsRepository{Settings: make(map[uuid.UUID]*entity.UserSettings)}
	for _, s := range settings {
		r.Settings[s.UserID] = s
	}
	return r
}

func (r *UserSettingsRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Settings[userID]
	if !ok {
		return nil, domainerror.ErrSettingsNotFound
	}
	c := *s
	return &c, nil
}

func (r *UserSettingsRepository) Save(_ context.Context, s *entity.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *s
	r.Settings[s.UserID] = &c
	return nil
}

func (r *UserSettingsRepository) FindWithNotificationsEnabled(_ context.Context) ([]*entity.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.UserSettings, 0)
	for _, s := range r.Settings {
		if s.NotificationEnabled {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID.String() < out[j].UserID.String() })
	return out, nil
}

// CategoryRepository is an in-memory adapter.CategoryRepository.
type CategoryRepository struct {
	mu         sync.Mutex
	Categories map[uuid.UUID]*entity.Category
}

var _ adapter.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates a repository seeded with categories.
func NewCategoryRepository(categories ...*entity.Category) *CategoryRepository {
	r := &CategoryRepository{Categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		r.Categories[c.ID] = c
	}
	return r
}

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.Categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0)
	for _, c := range r.Categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepository) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Categories {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Categories[id]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	delete(r.Categories, id)
	return nil
}

// EmailService records queued reminders.
type EmailService struct {
	mu        sync.Mutex
	Reminders []adapter.QueueSubscriptionReminderInput
	Err       error
}

var _ adapter.EmailService = (*EmailService)(nil)

func (s *EmailService) QueueSubscriptionReminder(_ context.Context, input adapter.QueueSubscriptionReminderInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Reminders = append(s.Reminders, input)
	return nil
}

// EmailQueueRepository is an in-memory adapter.EmailQueueRepository.
type EmailQueueRepository struct {
	mu   sync.Mutex
	Jobs map[uuid.UUID]*entity.EmailJob
}

var _ adapter.EmailQueueRepository = (*EmailQueueRepository)(nil)

// NewEmailQueueRepository creates an empty queue.
func NewEmailQueueRepository() *EmailQueueRepository {
	return &EmailQueueRepository{Jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (r *EmailQueueRepository) Create(_ context.Context, job *entity.EmailJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Jobs[job.ID] = job
	return nil
}

func (r *EmailQueueRepository) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	out := make([]*entity.EmailJob, 0)
	for _, j := range r.Jobs {
		if j.Status == entity.EmailStatusPending && !j.ScheduledAt.After(now) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *EmailQueueRepository) Update(_ context.Context, job *entity.EmailJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Jobs[job.ID] = job
	return nil
}

func (r *EmailQueueRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.Jobs[id]
	if !ok {
		return nil, domainerror.ErrEmailJobNotFound
	}
	return j, nil
}

func (r *EmailQueueRepository) ExistsByDedupKey(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.Jobs {
		if j.DedupKey == key && j.Status != entity.EmailStatusFailed {
			return true, nil
		}
	}
	return false, nil
}

func (r *EmailQueueRepository) DeleteOldSentJobs(_ context.Context, olderThanDays int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	var n int64
	for id, j := range r.Jobs {
		if j.Status == entity.EmailStatusSent && j.ProcessedAt != nil && j.ProcessedAt.Before(cutoff) {
			delete(r.Jobs, id)
			n++
		}
	}
	return n, nil
}

// BillingDateCache is a map-backed adapter.BillingDateCache that counts hits.
type BillingDateCache struct {
	mu     sync.Mutex
	values map[string]time.Time
	Hits   int
	Sets   int
}

var _ adapter.BillingDateCache = (*BillingDateCache)(nil)

// NewBillingDateCache creates an empty cache.
func NewBillingDateCache() *BillingDateCache {
	return &BillingDateCache{values: make(map[string]time.Time)}
}

func cacheKey(anchor time.Time, period string, today time.Time) string {
	return anchor.Format("2006-01-02") + "|" + period + "|" + today.Format("2006-01-02")
}

func (c *BillingDateCache) Get(_ context.Context, anchor time.Time, period string, today time.Time) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[cacheKey(anchor, period, today)]
	if ok {
		c.Hits++
	}
	return v, ok
}

func (c *BillingDateCache) Set(_ context.Context, anchor time.Time, period string, today time.Time, next time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[cacheKey(anchor, period, today)] = next
	c.Sets++
}
