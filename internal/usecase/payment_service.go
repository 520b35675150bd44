package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
	"github.com/zhivlux/storefront/pkg/metrics"
)

// ErrOrderNotFound — заказ с таким id не найден в журнале.
var ErrOrderNotFound = errors.New("order not found")

// ErrUnknownTransactionStatus — шлюз прислал нераспознанный статус транзакции.
var ErrUnknownTransactionStatus = errors.New("unknown transaction status")

const orderIDPrefix = "ZLX"

// adminFeeItemName — имя строки комиссии в детализации платежа.
const adminFeeItemName = "Biaya Admin"

// PaymentResult — результат process(): токен hosted-флоу для реального
// пути, синтетический успех для мок-пути.
type PaymentResult struct {
	OrderID     string             `json:"orderId"`
	Status      domain.OrderStatus `json:"status"`
	Token       string             `json:"token,omitempty"`
	RedirectURL string             `json:"redirectUrl,omitempty"`
	Mock        bool               `json:"mock,omitempty"`
}

// PaymentService — оркестратор одной попытки покупки: от выбора
// пользователя до терминального персистентного статуса.
// Без настроенных креденшелов шлюза работает мок-путь.
type PaymentService struct {
	orders    ports.OrderRepository
	gateway   ports.PaymentGateway
	validator ports.PaymentValidator
	log       ports.Logger

	configured bool
	mockDelay  time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

func NewPaymentService(
	orders ports.OrderRepository,
	gateway ports.PaymentGateway,
	validator ports.PaymentValidator,
	cfg config.Midtrans,
	log ports.Logger,
) *PaymentService {
	return &PaymentService{
		orders:     orders,
		gateway:    gateway,
		validator:  validator,
		log:        log,
		configured: cfg.IsConfigured(),
		mockDelay:  cfg.MockDelay,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// Process — провести попытку покупки: сгенерировать orderId, записать
// Pending, запросить токен у шлюза. Порядок фиксирован: персист Pending
// строго до запроса токена. Повторные вызовы не дедуплицируются —
// каждый порождает новый orderId.
func (s *PaymentService) Process(ctx context.Context, req *domain.PaymentRequest) (*PaymentResult, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return nil, err
	}

	orderID := s.generateOrderID()
	order := &domain.Order{
		OrderID:       orderID,
		ProductName:   req.ProductName,
		VariantName:   req.Variant.Name,
		Amount:        req.TotalAmount(),
		Status:        domain.OrderPending,
		UserEmail:     req.UserEmail,
		UserID:        req.UserID,
		ZoneID:        req.ZoneID,
		PaymentMethod: req.Method.ID,
		CreatedAt:     s.now(),
	}
	// Сбой персиста Pending не блокирует попытку оплаты.
	if err := s.orders.Save(ctx, order); err != nil {
		s.log.Warnf(ctx, "payment: pending persist for %s failed: %v", orderID, err)
	}

	if !s.configured {
		return s.processMock(ctx, orderID)
	}

	token, err := s.gateway.CreateToken(ctx, s.chargeRequest(orderID, req))
	if err != nil {
		s.setStatus(ctx, orderID, domain.OrderFailed)
		metrics.PaymentAttempts.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("платёж отклонён шлюзом: %w", err)
	}

	s.log.Infof(ctx, "payment: %s token granted, hosted flow open", orderID)
	return &PaymentResult{
		OrderID:     orderID,
		Status:      domain.OrderPending,
		Token:       token.Token,
		RedirectURL: token.RedirectURL,
	}, nil
}

// processMock — путь без живых креденшелов: фиксированная задержка
// обработки и синтетический успех, чтобы витрина оставалась демонстрируемой.
func (s *PaymentService) processMock(ctx context.Context, orderID string) (*PaymentResult, error) {
	s.log.Infof(ctx, "payment: gateway not configured, mock path for %s", orderID)
	s.sleep(s.mockDelay)
	s.setStatus(ctx, orderID, domain.OrderSuccess)
	metrics.PaymentAttempts.WithLabelValues("mock").Inc()
	return &PaymentResult{OrderID: orderID, Status: domain.OrderSuccess, Mock: true}, nil
}

// OnSuccess — колбэк успешной оплаты hosted-флоу.
func (s *PaymentService) OnSuccess(ctx context.Context, orderID string) error {
	metrics.PaymentAttempts.WithLabelValues("success").Inc()
	return s.orders.SetStatus(ctx, orderID, domain.OrderSuccess)
}

// OnPending — оплата начата, но не завершена; заказ остаётся Pending.
func (s *PaymentService) OnPending(ctx context.Context, orderID string) error {
	metrics.PaymentAttempts.WithLabelValues("pending").Inc()
	return s.orders.SetStatus(ctx, orderID, domain.OrderPending)
}

// OnError — терминальный отказ; возвращаемое сообщение не пусто.
func (s *PaymentService) OnError(ctx context.Context, orderID string) (string, error) {
	metrics.PaymentAttempts.WithLabelValues("failed").Inc()
	if err := s.orders.SetStatus(ctx, orderID, domain.OrderFailed); err != nil {
		return "", err
	}
	return fmt.Sprintf("оплата заказа %s не прошла, попробуйте ещё раз", orderID), nil
}

// OnClose — пользователь закрыл hosted-флоу: статус заказа не меняется.
func (s *PaymentService) OnClose(ctx context.Context, orderID string) {
	metrics.PaymentAttempts.WithLabelValues("abandoned").Inc()
	s.log.Infof(ctx, "payment: %s hosted flow closed by user", orderID)
}

// HandleNotification — вебхук шлюза: отображает transaction_status в
// колбэк hosted-флоу и персистит результат.
func (s *PaymentService) HandleNotification(ctx context.Context, orderID, transactionStatus string) (domain.OrderStatus, error) {
	switch transactionStatus {
	case "capture", "settlement":
		return domain.OrderSuccess, s.OnSuccess(ctx, orderID)
	case "pending":
		return domain.OrderPending, s.OnPending(ctx, orderID)
	case "deny", "cancel", "expire", "failure":
		_, err := s.OnError(ctx, orderID)
		return domain.OrderFailed, err
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionStatus, transactionStatus)
	}
}

// Track — заказ по человекочитаемому id плюс, при настроенном шлюзе,
// актуальный статус транзакции. Сбой опроса шлюза не прячет сам заказ.
func (s *PaymentService) Track(ctx context.Context, orderID string) (*domain.Order, *domain.GatewayStatus, error) {
	order, err := s.orders.ByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if !s.configured {
		return order, nil, nil
	}
	status, err := s.gateway.Status(ctx, orderID)
	if err != nil {
		s.log.Warnf(ctx, "payment: status poll for %s failed: %v", orderID, err)
		return order, nil, nil
	}
	return order, status, nil
}

// chargeRequest — запрос токена: детализация из варианта и, при комиссии
// больше нуля, отдельной строки Biaya Admin. Сумма — цена плюс комиссия.
func (s *PaymentService) chargeRequest(orderID string, req *domain.PaymentRequest) *domain.ChargeRequest {
	items := []domain.LineItem{{
		ID:       "item-1",
		Price:    req.Variant.Price,
		Quantity: 1,
		Name:     req.Variant.Name,
	}}
	if req.Method.Fee > 0 {
		items = append(items, domain.LineItem{
			ID:       "admin-fee",
			Price:    req.Method.Fee,
			Quantity: 1,
			Name:     adminFeeItemName,
		})
	}
	return &domain.ChargeRequest{
		OrderID:     orderID,
		Amount:      req.TotalAmount(),
		PaymentType: s.gateway.PaymentTypeFor(req.Method.ID),
		Customer: domain.CustomerDetails{
			FirstName: req.UserID,
			Email:     req.UserEmail,
		},
		Items: items,
	}
}

// generateOrderID — глобально уникальный человекочитаемый id заказа:
// монотонный таймстемп плюс случайный суффикс.
func (s *PaymentService) generateOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%d-%s", orderIDPrefix, s.now().UnixMilli(), suffix)
}

func (s *PaymentService) setStatus(ctx context.Context, orderID string, status domain.OrderStatus) {
	if err := s.orders.SetStatus(ctx, orderID, status); err != nil {
		s.log.Warnf(ctx, "payment: set %s status %s failed: %v", orderID, status, err)
	}
}
