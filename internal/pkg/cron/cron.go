package cron

import (
	"log"
	"time"

	"github.com/dkoroteev/brawlmate/internal/repository"
)

// Service runs the hourly premium-expiry sweep. A failed sweep is
// logged and the loop continues at the next tick; there is no retry or
// backoff.
type Service struct {
	userRepo *repository.UserRepository
	interval time.Duration
	stopChan chan struct{}
}

func NewService(userRepo *repository.UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
		interval: time.Hour,
		stopChan: make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *Service) Start() {
	go s.run()
	log.Println("Cron service started (premium expiry sweep)")
}

// Stop terminates the loop.
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

func (s *Service) sweepExpired() {
	expired, err := s.userRepo.ExpirePremium(time.Now())
	if err != nil {
		log.Printf("Premium sweep failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Premium sweep: downgraded %d users", expired)
	}
}

// RunNow triggers one sweep immediately (manual or test use).
func (s *Service) RunNow() error {
	_, err := s.userRepo.ExpirePremium(time.Now())
	return err
}
