package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/observability"
	"github.com/bnema/primemall-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// StoreService drives the funds ledger for one storefront session and keeps
// the persisted snapshot in step with it.
type StoreService struct {
	sessions *SessionStore
	catalog  ports.CatalogRepository
	log      logrus.FieldLogger

	mu     sync.Mutex
	ledger *domain.FundsLedger
	loaded bool
}

func NewStoreService(sessions *SessionStore, catalog ports.CatalogRepository, log logrus.FieldLogger) *StoreService {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &StoreService{
		sessions: sessions,
		catalog:  catalog,
		log:      log.WithField("component", "store_service"),
		ledger:   domain.NewFundsLedger(),
	}
}

// Load restores the persisted session. An unreadable snapshot is discarded
// and the session starts signed out.
func (s *StoreService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

func (s *StoreService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	snapshot, err := s.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidSnapshot) {
			return fmt.Errorf("load session: %w", err)
		}
		s.log.WithError(err).Warn("discarding invalid session snapshot")
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear invalid session: %w", clearErr)
		}
		snapshot = domain.Snapshot{}
	}

	if err := s.ledger.Restore(snapshot); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	s.loaded = true
	observability.ReservedFunds.Set(float64(s.ledger.CartTotal()))

	return nil
}

func (s *StoreService) Signup(ctx context.Context, cmd SignupCommand) (domain.Account, error) {
	account, err := domain.NewAccount(cmd.Name, cmd.Email)
	if err != nil {
		return domain.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return domain.Account{}, err
	}
	if err := s.sessions.SaveUser(ctx, account); err != nil {
		return domain.Account{}, err
	}
	if err := s.startLocked(ctx, account); err != nil {
		return domain.Account{}, err
	}

	s.log.WithField("email", account.Email).Info("account created")
	return account, nil
}

// Login resumes the returning-user record for email, or creates a fresh
// account named after the email local part.
func (s *StoreService) Login(ctx context.Context, cmd LoginCommand) (domain.Account, error) {
	if err := domain.ValidateEmail(cmd.Email); err != nil {
		return domain.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return domain.Account{}, err
	}

	account, found, err := s.sessions.LoadUser(ctx, cmd.Email)
	if err != nil {
		return domain.Account{}, err
	}
	if !found {
		account, err = domain.NewAccount(domain.DefaultAccountName(cmd.Email), cmd.Email)
		if err != nil {
			return domain.Account{}, err
		}
		if err := s.sessions.SaveUser(ctx, account); err != nil {
			return domain.Account{}, err
		}
	}

	if err := s.startLocked(ctx, account); err != nil {
		return domain.Account{}, err
	}

	s.log.WithFields(logrus.Fields{"email": account.Email, "returning": found}).Info("signed in")
	return account, nil
}

func (s *StoreService) startLocked(ctx context.Context, account domain.Account) error {
	return s.mutateLocked(ctx, "start_session", func(l *domain.FundsLedger) error {
		l.StartSession(account)
		return nil
	})
}

// Logout ends the session. Funds held by the cart are discarded with the
// session account.
func (s *StoreService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}

	return s.mutateLocked(ctx, "end_session", func(l *domain.FundsLedger) error {
		l.EndSession()
		return nil
	})
}

func (s *StoreService) AddToCart(ctx context.Context, productID domain.ItemID) (CartView, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return CartView{}, err
	}

	return s.mutate(ctx, "reserve", func(l *domain.FundsLedger) error {
		return l.Reserve(product.Item())
	})
}

func (s *StoreService) RemoveFromCart(ctx context.Context, productID domain.ItemID) (CartView, error) {
	return s.mutate(ctx, "release", func(l *domain.FundsLedger) error {
		if !l.Authenticated() {
			return domain.ErrNotAuthenticated
		}
		l.Release(productID)
		return nil
	})
}

func (s *StoreService) SetQuantity(ctx context.Context, cmd SetQuantityCommand) (CartView, error) {
	return s.mutate(ctx, "set_quantity", func(l *domain.FundsLedger) error {
		return l.SetQuantity(cmd.ProductID, cmd.Quantity)
	})
}

func (s *StoreService) ClearCart(ctx context.Context) (CartView, error) {
	return s.mutate(ctx, "clear", func(l *domain.FundsLedger) error {
		if !l.Authenticated() {
			return domain.ErrNotAuthenticated
		}
		l.Clear()
		return nil
	})
}

// Checkout converts the held funds into a purchase and empties the cart.
func (s *StoreService) Checkout(ctx context.Context) (CheckoutResult, error) {
	var result CheckoutResult
	_, err := s.mutate(ctx, "checkout", func(l *domain.FundsLedger) error {
		spent, err := l.Checkout()
		if err != nil {
			return err
		}
		account, _ := l.Account()
		result = CheckoutResult{Spent: spent, Remaining: account.Funds}
		return nil
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	s.log.WithField("spent", result.Spent.String()).Info("checkout complete")
	return result, nil
}

func (s *StoreService) Cart(ctx context.Context) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return CartView{}, err
	}

	return s.viewLocked(), nil
}

func (s *StoreService) mutate(ctx context.Context, operation string, apply func(*domain.FundsLedger) error) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return CartView{}, err
	}
	if err := s.mutateLocked(ctx, operation, apply); err != nil {
		return CartView{}, err
	}

	return s.viewLocked(), nil
}

// mutateLocked applies a ledger change and persists it. When persisting
// fails the in-memory ledger and the stored snapshot are rolled back.
func (s *StoreService) mutateLocked(ctx context.Context, operation string, apply func(*domain.FundsLedger) error) error {
	previous := s.ledger.Snapshot()

	if err := apply(s.ledger); err != nil {
		observability.CartMutations.WithLabelValues(operation, observability.OutcomeError).Inc()
		return err
	}

	if err := s.sessions.Save(ctx, s.ledger.Snapshot()); err != nil {
		observability.CartMutations.WithLabelValues(operation, observability.OutcomeError).Inc()

		var rollbackErr error
		if restoreErr := s.ledger.Restore(previous); restoreErr != nil {
			rollbackErr = errors.Join(rollbackErr, restoreErr)
		}
		if saveErr := s.sessions.Save(ctx, previous); saveErr != nil {
			rollbackErr = errors.Join(rollbackErr, saveErr)
		}
		if rollbackErr != nil {
			return fmt.Errorf("persist %s and rollback: %w", operation, errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("persist %s: %w", operation, err)
	}

	observability.CartMutations.WithLabelValues(operation, observability.OutcomeOK).Inc()
	observability.ReservedFunds.Set(float64(s.ledger.CartTotal()))
	return nil
}

func (s *StoreService) viewLocked() CartView {
	view := CartView{
		Lines: s.ledger.Lines(),
		Total: s.ledger.CartTotal(),
		Count: s.ledger.CartCount(),
	}
	if account, ok := s.ledger.Account(); ok {
		view.Account = &account
	}

	return view
}
