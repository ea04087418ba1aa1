package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
)

type CreateMemberRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Lastname string `json:"lastname" validate:"max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
}

// MemberView is a member together with its derived standing.
type MemberView struct {
	domain.Member
	Current bool
}

type MemberService struct {
	Store store.Store
	Clock
}

// View attaches the derived standing as of today in the gym timezone.
func (s *MemberService) View(m domain.Member) MemberView {
	return MemberView{Member: m, Current: domain.Standing(m, s.today())}
}

func (s *MemberService) CreateMember(ctx context.Context, req CreateMemberRequest) (MemberView, error) {
	log := slogx.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Lastname = strings.TrimSpace(req.Lastname)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateStruct(ErrInvalidMember, req); err != nil {
		return MemberView{}, err
	}

	now := s.now()
	m := domain.NewMember(idx.NewAt(now).String(), req.Name, req.Lastname, req.Email, now)
	if err := s.Store.Members().Create(ctx, m); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("member email already registered")
			return MemberView{}, ErrEmailTaken
		}
		log.Error("failed to create member", slog.Any("error", err))
		return MemberView{}, err
	}

	log.Info("member created", slog.String("member_id", m.ID))
	return s.View(m), nil
}

func (s *MemberService) GetMember(ctx context.Context, id string) (MemberView, error) {
	m, err := s.Store.Members().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MemberView{}, ErrMemberNotFound
		}
		return MemberView{}, err
	}
	return s.View(m), nil
}

// ListMembers pages through members, optionally filtered by stored billing
// state.
func (s *MemberService) ListMembers(ctx context.Context, state domain.BillingState, opts store.ListOptions) ([]MemberView, error) {
	var (
		members []domain.Member
		err     error
	)
	if state == "" {
		members, err = s.Store.Members().List(ctx, opts)
	} else {
		if !state.Valid() {
			return nil, invalid(ErrInvalidMember, "unknown billing state "+string(state))
		}
		members, err = s.Store.Members().ListByBillingState(ctx, state, opts)
	}
	if err != nil {
		return nil, err
	}

	out := make([]MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, s.View(m))
	}
	return out, nil
}
