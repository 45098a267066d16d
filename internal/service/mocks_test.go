package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"medishare-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Equipment, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) SetAvailabilityIf(ctx context.Context, id int32, expected, next domain.Availability) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}
func (m *MockEquipmentRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) CountByOwner(ctx context.Context, ownerID int32, status domain.ListingStatus) (int32, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) StatusCounts(ctx context.Context) (map[string]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int32), args.Error(1)
}
func (m *MockEquipmentRepo) CategoryCounts(ctx context.Context) (map[string]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int32), args.Error(1)
}
func (m *MockEquipmentRepo) OwnerListingValue(ctx context.Context, ownerID int32) (float64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(float64), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateCheckout(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByRenter(ctx context.Context, renterID int32) ([]domain.Order, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Order, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatusIf(ctx context.Context, id int32, expected, next domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepo) CountByStatus(ctx context.Context, status domain.OrderStatus) (int32, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOrderRepo) CompletedRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockOrderRepo) MonthlyCounts(ctx context.Context, months int) ([]domain.MonthlyOrderCount, error) {
	args := m.Called(ctx, months)
	return args.Get(0).([]domain.MonthlyOrderCount), args.Error(1)
}

// MockFavoriteRepo
type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Create(ctx context.Context, fav *domain.Favorite) error {
	args := m.Called(ctx, fav)
	return args.Error(0)
}
func (m *MockFavoriteRepo) Get(ctx context.Context, userID, equipmentID int32) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}
func (m *MockFavoriteRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}
func (m *MockFavoriteRepo) Delete(ctx context.Context, userID, equipmentID int32) error {
	args := m.Called(ctx, userID, equipmentID)
	return args.Error(0)
}
func (m *MockFavoriteRepo) DeleteByEquipment(ctx context.Context, equipmentID int32) error {
	args := m.Called(ctx, equipmentID)
	return args.Error(0)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsRepo) Update(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockSubscriberRepo
type MockSubscriberRepo struct {
	mock.Mock
}

func (m *MockSubscriberRepo) Create(ctx context.Context, sub *domain.Subscriber) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubscriberRepo) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}
func (m *MockSubscriberRepo) Reactivate(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockSubscriberRepo) Deactivate(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockSubscriberRepo) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Subscriber), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcomeEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderReceivedNotification(ctx context.Context, ownerEmail, ownerName string, order *domain.Order) error {
	args := m.Called(ctx, ownerEmail, ownerName, order)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderStatusNotification(ctx context.Context, renterEmail string, order *domain.Order) error {
	args := m.Called(ctx, renterEmail, order)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingOrderReminder(ctx context.Context, ownerEmail, ownerName string, order *domain.Order) error {
	args := m.Called(ctx, ownerEmail, ownerName, order)
	return args.Error(0)
}
func (m *MockEmailService) SendEquipmentDigest(ctx context.Context, email string, equipment []domain.Equipment) error {
	args := m.Called(ctx, email, equipment)
	return args.Error(0)
}
