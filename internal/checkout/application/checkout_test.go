package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cart "github.com/wyfcoding/ecommerce/internal/cart/domain"
	cartmem "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/persistence/memory"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	checkoutpay "github.com/wyfcoding/ecommerce/internal/checkout/infrastructure/payment"
	checkoutmem "github.com/wyfcoding/ecommerce/internal/checkout/infrastructure/persistence/memory"
)

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	p.topics = append(p.topics, topic)
	return nil
}

type stubPlacer struct {
	orderNumber string
	err         error
	placed      int
}

func (p *stubPlacer) PlaceOrder(ctx context.Context, input PlaceOrderInput) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.placed++
	return p.orderNumber, nil
}

type checkoutFixture struct {
	service   *CheckoutService
	carts     cart.CartRepository
	publisher *recordingPublisher
	placer    *stubPlacer
}

func newFixture(t *testing.T, failureRate float64) *checkoutFixture {
	t.Helper()
	carts := cartmem.NewCartRepository()
	publisher := &recordingPublisher{}
	placer := &stubPlacer{orderNumber: "ORD-1001"}
	service := NewCheckoutService(
		checkoutmem.NewSessionRepository(),
		carts,
		checkoutpay.NewSimulatedGateway(time.Millisecond, failureRate),
		placer,
		publisher,
	)
	return &checkoutFixture{service: service, carts: carts, publisher: publisher, placer: placer}
}

func (f *checkoutFixture) fillCart(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()
	userCart, err := f.carts.GetByUserID(ctx, userID)
	require.NoError(t, err)
	userCart.AddItem(catalog.Product{
		ID:    "1",
		Name:  "Wireless Earbuds",
		Price: decimal.RequireFromString("149.99"),
	})
	require.NoError(t, f.carts.Save(ctx, userCart))
}

func (f *checkoutFixture) sessionAtReview(t *testing.T, userID string) *domain.Session {
	t.Helper()
	ctx := context.Background()

	session, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)

	_, err = f.service.UpdateShipping(ctx, session.ID, domain.ShippingInfo{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Address: "1 Main St", City: "Springfield", ZipCode: "62701",
	})
	require.NoError(t, err)
	_, err = f.service.Next(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.service.SelectShippingMethod(ctx, session.ID, domain.ShippingMethodStandard)
	require.NoError(t, err)
	_, err = f.service.Next(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.service.UpdatePayment(ctx, session.ID, domain.PaymentInfo{
		CardNumber: "4242424242424242", ExpiryMonth: "12", ExpiryYear: "2028",
		CVV: "123", CardholderName: "Jane Doe",
	})
	require.NoError(t, err)
	_, err = f.service.Next(ctx, session.ID)
	require.NoError(t, err)

	current, err := f.service.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StepReview, current.Step)

	return session
}

func TestStartCheckoutRejectsEmptyCart(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.StartCheckout(context.Background(), "user-1")

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestStartCheckoutReturnsExistingSession(t *testing.T) {
	f := newFixture(t, 0)
	f.fillCart(t, "user-1")
	ctx := context.Background()

	first, err := f.service.StartCheckout(ctx, "user-1")
	require.NoError(t, err)

	second, err := f.service.StartCheckout(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{domain.TopicCheckoutStarted}, f.publisher.topics)
}

func TestSubmitHappyPath(t *testing.T) {
	f := newFixture(t, 0)
	f.fillCart(t, "user-1")
	ctx := context.Background()

	session := f.sessionAtReview(t, "user-1")

	result, err := f.service.Submit(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, result.Status)
	assert.Equal(t, "ORD-1001", result.OrderNumber)
	assert.Equal(t, 1, f.placer.placed)

	// 下单成功后购物车被清空
	userCart, err := f.carts.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, userCart.IsEmpty())

	assert.Contains(t, f.publisher.topics, domain.TopicOrderSubmitted)
}

func TestSubmitPaymentDeclinedKeepsCart(t *testing.T) {
	f := newFixture(t, 1.0)
	f.fillCart(t, "user-1")
	ctx := context.Background()

	session := f.sessionAtReview(t, "user-1")

	_, err := f.service.Submit(ctx, session.ID)
	var submission *domain.SubmissionError
	require.ErrorAs(t, err, &submission)

	// 会话回到确认订单步骤，可重新提交
	current, err := f.service.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, current.Status)
	assert.Equal(t, domain.StepReview, current.Step)

	// 购物车原样保留
	userCart, err := f.carts.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, userCart.IsEmpty())

	assert.Equal(t, 0, f.placer.placed)
	assert.Contains(t, f.publisher.topics, domain.TopicOrderSubmissionFailed)

	// 再次提交依旧被网关拒绝，而不是被并发锁拦截
	_, err = f.service.Submit(ctx, session.ID)
	require.ErrorAs(t, err, &submission)
}

func TestSubmitRequiresCompletedSteps(t *testing.T) {
	f := newFixture(t, 0)
	f.fillCart(t, "user-1")
	ctx := context.Background()

	session, err := f.service.StartCheckout(ctx, "user-1")
	require.NoError(t, err)

	// 配送信息未填，提交整体复核直接拦下
	_, err = f.service.Submit(ctx, session.ID)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, domain.StepShippingInfo, validation.Step)
}

func TestSubmitAfterConfirmationRejected(t *testing.T) {
	f := newFixture(t, 0)
	f.fillCart(t, "user-1")
	ctx := context.Background()

	session := f.sessionAtReview(t, "user-1")
	_, err := f.service.Submit(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestSubmitFailsWhenOrderPlacementFails(t *testing.T) {
	f := newFixture(t, 0)
	f.placer.err = errors.New("order store unavailable")
	f.fillCart(t, "user-1")
	ctx := context.Background()

	session := f.sessionAtReview(t, "user-1")

	_, err := f.service.Submit(ctx, session.ID)
	require.Error(t, err)

	// 扣款后下单失败同样回滚会话，购物车不丢
	current, err := f.service.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, current.Step)

	userCart, err := f.carts.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, userCart.IsEmpty())
}

func TestSubmitUnknownSession(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.Submit(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
