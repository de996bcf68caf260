package accesscontrol

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// Service manages the admin IP allow-list and answers per-request checks.
// The list is cached briefly so the admin middleware does not hit the
// database on every request; an empty list allows everything.
type Service struct {
	repo   AllowlistRepository
	logger Logger

	cacheTTL time.Duration

	mu        sync.RWMutex
	cached    []string
	refreshed time.Time
}

func NewService(repo AllowlistRepository, logger Logger) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		cacheTTL: 30 * time.Second,
	}
}

// List returns the configured allow-list entries.
func (s *Service) List(ctx context.Context) ([]string, error) {
	ips, err := s.repo.GetIPAllowlist(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return ips, nil
}

// Update replaces the allow-list. Entries are single IPs or CIDR blocks.
func (s *Service) Update(ctx context.Context, entries []string) error {
	for _, entry := range entries {
		if !validEntry(entry) {
			s.logger.Warn("Update: rejecting malformed entry %q", entry)
			return fmt.Errorf("%w: malformed entry %q", ErrInvalidInput, entry)
		}
	}

	if err := s.repo.SaveIPAllowlist(ctx, entries); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.cached = entries
	s.refreshed = time.Now()
	s.mu.Unlock()

	s.logger.Info("Update: allow-list replaced with %d entries", len(entries))
	return nil
}

// IsAllowed reports whether the remote IP may reach the admin surface.
// A load failure fails open: the check allows the request and logs the error.
func (s *Service) IsAllowed(ctx context.Context, remoteIP string) bool {
	ip := net.ParseIP(remoteIP)
	if ip == nil {
		return false
	}

	entries, err := s.entries(ctx)
	if err != nil {
		s.logger.Error("IsAllowed: failed to load allow-list: %v", err)
		return true
	}
	if len(entries) == 0 {
		return true
	}

	for _, entry := range entries {
		if _, network, err := net.ParseCIDR(entry); err == nil {
			if network.Contains(ip) {
				return true
			}
			continue
		}
		if allowed := net.ParseIP(entry); allowed != nil && allowed.Equal(ip) {
			return true
		}
	}
	return false
}

func (s *Service) entries(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	if time.Since(s.refreshed) < s.cacheTTL {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	ips, err := s.repo.GetIPAllowlist(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = ips
	s.refreshed = time.Now()
	s.mu.Unlock()
	return ips, nil
}

func validEntry(entry string) bool {
	if net.ParseIP(entry) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(entry)
	return err == nil
}
