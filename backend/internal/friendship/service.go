// Package friendship implements the friend-request state machine: who may
// ask whom, how a pending request is answered, and who counts as a friend.
//
// All check-then-write sequences run inside a single Store unit of work, so
// correctness under concurrent requests rests on the store's transaction
// guarantees rather than on any in-process locking.
package friendship

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	apperrors "friendgraph/backend/pkg/errors"
	"friendgraph/backend/pkg/logger"
)

const (
	MsgInvalidStatus   = "Invalid friendship status"
	MsgRequestNotFound = "Friendship request not found"
	MsgNoFriends       = "No friendships found"
)

// Store is the property-graph backend.
//
// InPairTx runs fn in one transaction scoped to the pair (a, b). Both users
// are upserted and write-locked before fn runs, so no other unit of work on
// the same pair can interleave with it. The transaction commits when fn
// returns nil and rolls back otherwise; fn's error is returned unchanged.
type Store interface {
	InPairTx(ctx context.Context, a, b string, fn func(tx PairTx) error) error
	AcceptedNeighbours(ctx context.Context, userID string) ([]string, error)
}

// PairTx is the view of a locked pair inside Store.InPairTx.
type PairTx interface {
	// Edges returns every managed relationship between the pair, both directions.
	Edges(ctx context.Context) ([]Edge, error)
	Delete(ctx context.Context, e Edge) error
	Create(ctx context.Context, from, to string, kind Kind) (Edge, error)
}

// Service applies the relationship rules on top of a Store. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	store Store
}

// NewService creates a new relationship service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Initiate sends a friend request from initiatorID to recipientID.
func (s *Service) Initiate(ctx context.Context, initiatorID, recipientID string) (Edge, error) {
	if err := requirePair(initiatorID, recipientID); err != nil {
		return Edge{}, err
	}
	if initiatorID == recipientID {
		return Edge{}, reject(ReasonSelfRequest)
	}

	var created Edge
	err := s.store.InPairTx(ctx, initiatorID, recipientID, func(tx PairTx) error {
		edges, err := tx.Edges(ctx)
		if err != nil {
			return err
		}
		if reason := checkInitiate(initiatorID, recipientID, edges); reason != "" {
			return reject(reason)
		}
		// A declined request does not prevent a new one, but it is superseded.
		for _, e := range ofKind(edges, KindDeclined) {
			if err := tx.Delete(ctx, e); err != nil {
				return err
			}
		}
		created, err = tx.Create(ctx, initiatorID, recipientID, KindPending)
		return err
	})
	if err != nil {
		logResult(ctx, "initiate", initiatorID, recipientID, err)
		return Edge{}, err
	}

	logger.FromContext(ctx).Info("Friend request sent",
		zap.String("initiator_id", initiatorID),
		zap.String("recipient_id", recipientID),
	)
	return created, nil
}

// Respond answers the request initiatorID -> recipientID with decision
// (accepted, declined or blocked, case-insensitive). Blocking does not need
// a pending request and replaces whatever relationship the pair had.
func (s *Service) Respond(ctx context.Context, initiatorID, recipientID, decision string) (Edge, error) {
	kind, ok := ParseDecision(decision)
	if !ok {
		return Edge{}, apperrors.NewValidationFailed("status", MsgInvalidStatus)
	}
	if err := requirePair(initiatorID, recipientID); err != nil {
		return Edge{}, err
	}
	if initiatorID == recipientID {
		return Edge{}, reject(ReasonSelfRequest)
	}

	var created Edge
	err := s.store.InPairTx(ctx, initiatorID, recipientID, func(tx PairTx) error {
		edges, err := tx.Edges(ctx)
		if err != nil {
			return err
		}

		var replaced []Edge
		if kind == KindBlocked {
			replaced = edges
		} else {
			pending, found := findEdge(edges, KindPending, initiatorID, recipientID)
			if !found {
				return apperrors.NewNotFound("friendship", initiatorID+"->"+recipientID, MsgRequestNotFound)
			}
			replaced = []Edge{pending}
		}

		for _, e := range replaced {
			if err := tx.Delete(ctx, e); err != nil {
				return err
			}
		}
		created, err = tx.Create(ctx, initiatorID, recipientID, kind)
		return err
	})
	if err != nil {
		logResult(ctx, "respond", initiatorID, recipientID, err)
		return Edge{}, err
	}

	logger.FromContext(ctx).Info("Friendship updated",
		zap.String("initiator_id", initiatorID),
		zap.String("recipient_id", recipientID),
		zap.String("kind", string(kind)),
	)
	return created, nil
}

// Friends returns the sorted ids of everyone connected to userID by an
// accepted relationship in either direction. An empty result is reported as
// not found, the same as an unknown user.
func (s *Service) Friends(ctx context.Context, userID string) ([]string, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}

	ids, err := s.store.AcceptedNeighbours(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list friends", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	seen := make(map[string]struct{}, len(ids))
	friends := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == userID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		friends = append(friends, id)
	}
	if len(friends) == 0 {
		return nil, apperrors.NewNotFound("friendships", userID, MsgNoFriends)
	}

	sort.Strings(friends)
	return friends, nil
}

func reject(reason Reason) error {
	return apperrors.NewRuleRejected(string(reason), reason.Message())
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationFailed(field, field+" is required")
	}
	return nil
}

func requirePair(initiatorID, recipientID string) error {
	if err := requireID("initiator_id", initiatorID); err != nil {
		return err
	}
	return requireID("recipient_id", recipientID)
}

func logResult(ctx context.Context, op, initiatorID, recipientID string, err error) {
	log := logger.FromContext(ctx).With(
		zap.String("op", op),
		zap.String("initiator_id", initiatorID),
		zap.String("recipient_id", recipientID),
	)
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeRule, apperrors.ErrorTypeNotFound, apperrors.ErrorTypeValidation:
		log.Debug("Friendship transition rejected", zap.Error(err))
	default:
		log.Error("Friendship transition failed", zap.Error(err))
	}
}
