package service

import (
	"context"
	"sort"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type dashboardService struct {
	userRepo      repository.UserRepository
	equipmentRepo repository.EquipmentRepository
	orderRepo     repository.OrderRepository
}

func NewDashboardService(userRepo repository.UserRepository, equipmentRepo repository.EquipmentRepository, orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{userRepo: userRepo, equipmentRepo: equipmentRepo, orderRepo: orderRepo}
}

// AdminStats assembles the platform-wide dashboard. It is read-only; nothing
// here touches availability or order status.
func (s *dashboardService) AdminStats(ctx context.Context) (*domain.DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.orderRepo.CountByStatus(ctx, domain.OrderStatusApproved)
	if err != nil {
		return nil, err
	}
	statuses, err := s.equipmentRepo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.equipmentRepo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.orderRepo.MonthlyCounts(ctx, 6)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalUsers:          users,
		TotalEquipment:      equipment,
		Revenue:             revenue,
		ActiveRentals:       active,
		EquipmentStatus:     toStatusCounts(statuses),
		EquipmentCategories: toStatusCounts(categories),
		MonthlyRentals:      monthly,
	}, nil
}

func toStatusCounts(counts map[string]int32) []domain.StatusCount {
	out := make([]domain.StatusCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, domain.StatusCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
