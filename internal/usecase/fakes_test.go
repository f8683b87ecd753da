package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campuslink/internal/domain/entity"
	"campuslink/pkg/errors"
)

// In-memory repositories backing the usecase tests. They implement the same
// semantics as the Firestore adapters: NotFound on misses, derived query
// fields on create, and the same ordering guarantees.

type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		step: time.Millisecond,
	}
}

func (c *fakeClock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

type fakeMessageRepo struct {
	mu      sync.Mutex
	clock   *fakeClock
	direct  []*entity.DirectMessage
	group   []*entity.GroupMessage
	counter int
}

func newFakeMessageRepo(clock *fakeClock) *fakeMessageRepo {
	return &fakeMessageRepo{clock: clock}
}

func (r *fakeMessageRepo) CreateDirect(ctx context.Context, message *entity.DirectMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	message.ID = fmt.Sprintf("dm-%d", r.counter)
	message.CreatedAt = r.clock.next()
	message.Participants = []string{message.SenderID, message.ReceiverID}
	message.PairKey = entity.DirectPairKey(message.SenderID, message.ReceiverID)
	copied := *message
	r.direct = append(r.direct, &copied)
	return nil
}

func (r *fakeMessageRepo) ListConversations(ctx context.Context, userID string) ([]*entity.DirectMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var mine []*entity.DirectMessage
	for _, m := range r.direct {
		if m.SenderID == userID || m.ReceiverID == userID {
			mine = append(mine, m)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })

	seen := make(map[string]bool)
	var latest []*entity.DirectMessage
	for _, m := range mine {
		counterpart := m.Counterpart(userID)
		if seen[counterpart] {
			continue
		}
		seen[counterpart] = true
		latest = append(latest, m)
	}
	return latest, nil
}

func (r *fakeMessageRepo) ListDirectHistory(ctx context.Context, userA, userB string) ([]*entity.DirectMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pairKey := entity.DirectPairKey(userA, userB)
	var thread []*entity.DirectMessage
	for _, m := range r.direct {
		if m.PairKey == pairKey {
			thread = append(thread, m)
		}
	}
	sort.Slice(thread, func(i, j int) bool { return thread[i].CreatedAt.Before(thread[j].CreatedAt) })
	return thread, nil
}

func (r *fakeMessageRepo) CreateGroupMessage(ctx context.Context, message *entity.GroupMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	message.ID = fmt.Sprintf("gm-%d", r.counter)
	message.CreatedAt = r.clock.next()
	copied := *message
	r.group = append(r.group, &copied)
	return nil
}

func (r *fakeMessageRepo) ListGroupHistory(ctx context.Context, groupID string) ([]*entity.GroupMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var thread []*entity.GroupMessage
	for _, m := range r.group {
		if m.GroupID == groupID {
			thread = append(thread, m)
		}
	}
	sort.Slice(thread, func(i, j int) bool { return thread[i].CreatedAt.Before(thread[j].CreatedAt) })
	return thread, nil
}

type fakeGroupRepo struct {
	mu           sync.Mutex
	groups       map[string]*entity.Group
	incrementErr error
}

func newFakeGroupRepo(groups ...*entity.Group) *fakeGroupRepo {
	repo := &fakeGroupRepo{groups: make(map[string]*entity.Group)}
	for _, g := range groups {
		if g.UnreadCounts == nil {
			g.UnreadCounts = make(map[string]int)
		}
		repo.groups[g.ID] = g
	}
	return repo
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[id]
	if !ok {
		return nil, errors.NotFound("Group", nil)
	}
	copied := *group
	copied.UnreadCounts = make(map[string]int, len(group.UnreadCounts))
	for k, v := range group.UnreadCounts {
		copied.UnreadCounts[k] = v
	}
	return &copied, nil
}

func (r *fakeGroupRepo) Members(ctx context.Context, groupID string) ([]string, error) {
	group, err := r.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

func (r *fakeGroupRepo) IncrementUnread(ctx context.Context, groupID, senderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		return r.incrementErr
	}
	group, ok := r.groups[groupID]
	if !ok {
		return errors.NotFound("Group", nil)
	}
	for _, memberID := range group.Members {
		if memberID != senderID {
			group.UnreadCounts[memberID]++
		}
	}
	return nil
}

func (r *fakeGroupRepo) ResetUnread(ctx context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[groupID]
	if !ok {
		return errors.NotFound("Group", nil)
	}
	group.UnreadCounts[userID] = 0
	return nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	clock   *fakeClock
	records map[string]*entity.Notification
	counter int
}

func newFakeNotificationRepo(clock *fakeClock) *fakeNotificationRepo {
	return &fakeNotificationRepo{
		clock:   clock,
		records: make(map[string]*entity.Notification),
	}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	notification.ID = fmt.Sprintf("ntf-%d", r.counter)
	if notification.Count == 0 {
		notification.Count = 1
	}
	notification.CreatedAt = r.clock.next()
	copied := *notification
	r.records[notification.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	copied := *record
	return &copied, nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Notification
	for _, record := range r.records {
		if record.RecipientID == recipientID {
			copied := *record
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *fakeNotificationRepo) FindUnreadByKey(ctx context.Context, recipientID string, notificationType entity.NotificationType, relatedID string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.RecipientID == recipientID && record.Type == notificationType && record.RelatedID == relatedID && !record.Read {
			copied := *record
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) Update(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[notification.ID]; !ok {
		return errors.NotFound("Notification", nil)
	}
	copied := *notification
	r.records[notification.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) MarkAllViewed(ctx context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for _, record := range r.records {
		if record.RecipientID == recipientID && !record.Viewed {
			record.Viewed = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, record := range r.records {
		if record.RecipientID == recipientID && !record.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

type relationshipCall struct {
	requesterID string
	recipientID string
	accepted    bool
}

type fakeRelationships struct {
	mu    sync.Mutex
	calls []relationshipCall
}

func (s *fakeRelationships) Accept(ctx context.Context, requesterID, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, relationshipCall{requesterID, recipientID, true})
	return nil
}

func (s *fakeRelationships) Decline(ctx context.Context, requesterID, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, relationshipCall{requesterID, recipientID, false})
	return nil
}
