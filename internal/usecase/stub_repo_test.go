package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/pkg/errors"
)

// In-memory repositories for usecase tests. The offer stub keeps the same
// atomicity contract as the storage layer: resolution methods take one lock
// across the offer, its siblings and the listing, so concurrent accepts race
// exactly the way they do against real storage.

type stubListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	listErr  error
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *stubListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *stubListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *stubListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *stubListingRepo) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.listings {
		if l.OwnerID == ownerID && (status == "" || l.Status == status) {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubListingRepo) ListActiveByGame(ctx context.Context, game string, excludeOwnerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []*entity.Listing
	for _, l := range r.listings {
		if l.Game == game && l.Status == entity.ListingStatusActive && l.OwnerID != excludeOwnerID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

type stubCollectionRepo struct {
	mu    sync.Mutex
	items map[string]*entity.CollectionItem
	order []string
}

func newStubCollectionRepo() *stubCollectionRepo {
	return &stubCollectionRepo{items: make(map[string]*entity.CollectionItem)}
}

func (r *stubCollectionRepo) Create(ctx context.Context, item *entity.CollectionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *stubCollectionRepo) GetByID(ctx context.Context, id string) (*entity.CollectionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Collection item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *stubCollectionRepo) Update(ctx context.Context, item *entity.CollectionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Collection item", nil)
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *stubCollectionRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.CollectionItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CollectionItem
	for _, id := range r.order {
		if r.items[id].UserID == userID {
			copied := *r.items[id]
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCollectionRepo) ListTradeable(ctx context.Context, userID string) ([]*entity.CollectionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CollectionItem
	for _, id := range r.order {
		item := r.items[id]
		if item.UserID == userID && item.Eligible() {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

type stubOfferRepo struct {
	mu       sync.Mutex
	offers   map[string]*entity.Offer
	listings *stubListingRepo
}

func newStubOfferRepo(listings *stubListingRepo) *stubOfferRepo {
	return &stubOfferRepo{offers: make(map[string]*entity.Offer), listings: listings}
}

func (r *stubOfferRepo) Create(ctx context.Context, offer *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	offer.Status = entity.OfferStatusPending
	if offer.ParentOfferID != "" {
		parent, ok := r.offers[offer.ParentOfferID]
		if !ok {
			return errors.NotFound("Offer", nil)
		}
		if parent.Status != entity.OfferStatusPending {
			return errors.OfferNotPending(nil)
		}
		parent.Status = entity.OfferStatusCountered
	}
	copied := *offer
	r.offers[offer.ID] = &copied
	return nil
}

func (r *stubOfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	copied := *offer
	return &copied, nil
}

func (r *stubOfferRepo) ListByListingID(ctx context.Context, listingID string, status string) ([]*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Offer
	for _, o := range r.offers {
		if o.ListingID == listingID && (status == "" || o.Status == status) {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubOfferRepo) ListByOffererID(ctx context.Context, offererID string, limit, offset int) ([]*entity.Offer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Offer
	for _, o := range r.offers {
		if o.OffererID == offererID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOfferRepo) AcceptOffer(ctx context.Context, offerID, listingID, ownerID string) (*repository.AcceptOfferResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	if offer.Status != entity.OfferStatusPending {
		return nil, errors.OfferNotPending(nil)
	}

	r.listings.mu.Lock()
	listing, ok := r.listings.listings[listingID]
	if !ok {
		r.listings.mu.Unlock()
		return nil, errors.NotFound("Listing", nil)
	}
	if listing.OwnerID != ownerID {
		r.listings.mu.Unlock()
		return nil, errors.NotOwner(nil)
	}
	if listing.Status != entity.ListingStatusActive {
		r.listings.mu.Unlock()
		return nil, errors.InvalidListing("Listing is not active", nil)
	}

	offer.Status = entity.OfferStatusAccepted
	for _, sibling := range r.offers {
		if sibling.ListingID == listingID && sibling.ID != offerID && sibling.Status == entity.OfferStatusPending {
			sibling.Status = entity.OfferStatusDeclined
		}
	}
	listing.Status = entity.ListingStatusMatched
	r.listings.mu.Unlock()

	return &repository.AcceptOfferResult{
		MatchID:        uuid.New().String(),
		ConversationID: uuid.New().String(),
	}, nil
}

func (r *stubOfferRepo) DeclineOffer(ctx context.Context, offerID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return errors.NotFound("Offer", nil)
	}
	if offer.Status != entity.OfferStatusPending {
		return errors.OfferNotPending(nil)
	}

	listing, err := r.listings.GetByID(ctx, offer.ListingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != ownerID {
		return errors.NotOwner(nil)
	}

	offer.Status = entity.OfferStatusDeclined
	return nil
}

func (r *stubOfferRepo) WithdrawOffer(ctx context.Context, offerID, offererID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return errors.NotFound("Offer", nil)
	}
	if offer.OffererID != offererID {
		return errors.Forbidden("Cannot withdraw another user's offer", nil)
	}
	if offer.Status != entity.OfferStatusPending {
		return errors.OfferNotPending(nil)
	}

	offer.Status = entity.OfferStatusWithdrawn
	return nil
}

func (r *stubOfferRepo) ExpireListing(ctx context.Context, listingID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings.mu.Lock()
	defer r.listings.mu.Unlock()

	listing, ok := r.listings.listings[listingID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	if listing.OwnerID != ownerID {
		return errors.NotOwner(nil)
	}
	if listing.Status != entity.ListingStatusActive {
		return errors.InvalidListing("Listing is not active", nil)
	}

	for _, o := range r.offers {
		if o.ListingID == listingID && o.Status == entity.OfferStatusPending {
			o.Status = entity.OfferStatusWithdrawn
		}
	}
	listing.Status = entity.ListingStatusExpired
	return nil
}

type stubConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *stubConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *stubConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *conversation
	return &copied, nil
}

func (r *stubConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[conversation.ID]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *stubConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	copied := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &copied)
	return nil
}

func (r *stubConversationRepo) GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages[conversationID] {
		if m.ID == messageID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *stubConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.messages[conversationID] {
		copied := *m
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *stubConversationRepo) AppendNegotiationMessage(ctx context.Context, message *entity.Message, status entity.NegotiationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[message.ConversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	copied := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &copied)

	conversation.NegotiationStatus = status
	conversation.LastMessage = message.Content
	return nil
}
