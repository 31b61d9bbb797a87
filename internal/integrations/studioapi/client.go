package studioapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/pagination"
)

// Исходы вызова для метрик
const (
	outcomeOK               = "ok"
	outcomeValidationFailed = "validation_failed"
	outcomeNotFound         = "not_found"
	outcomeError            = "error"
)

// Client клиент REST API студии
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        Logger
	observer   Observer
}

// NewClient создает новый экземпляр клиента API студии. observer может быть nil.
func NewClient(baseURL string, timeout time.Duration, log Logger, observer Observer) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url %q: %v", ErrInternal, baseURL, err)
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		observer: observer,
	}, nil
}

// ListTrainers загружает всех тренеров
func (c *Client) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	items, err := listAll[Trainer](ctx, c, "list_trainers", c.endpoint("trainers", nil))
	if err != nil {
		return nil, err
	}
	return mapSlice(items, Trainer.toDomain), nil
}

// ListPackages загружает все пакеты занятий
func (c *Client) ListPackages(ctx context.Context) ([]domain.Package, error) {
	items, err := listAll[Package](ctx, c, "list_packages", c.endpoint("packages", nil))
	if err != nil {
		return nil, err
	}
	return mapSlice(items, Package.toDomain), nil
}

// ListSlots загружает слоты тренера за месяц
func (c *Client) ListSlots(ctx context.Context, trainerID int64, year int, month time.Month) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("trainer", strconv.FormatInt(trainerID, 10))
	query.Set("month", fmt.Sprintf("%04d-%02d", year, int(month)))

	items, err := listAll[Slot](ctx, c, "list_slots", c.endpoint("availability-slots", query))
	if err != nil {
		return nil, err
	}
	return mapSlice(items, Slot.toDomain), nil
}

// ListSubscriptions загружает абонементы текущего пользователя
func (c *Client) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	items, err := listAll[Subscription](ctx, c, "list_subscriptions", c.endpoint("subscriptions", nil))
	if err != nil {
		return nil, err
	}
	return mapSlice(items, Subscription.toDomain), nil
}

// ListBookings загружает записи текущего пользователя
func (c *Client) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	items, err := listAll[Booking](ctx, c, "list_bookings", c.endpoint("bookings", nil))
	if err != nil {
		return nil, err
	}
	return mapSlice(items, Booking.toDomain), nil
}

// GetBooking получает запись по ID
func (c *Client) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	target := c.endpoint(fmt.Sprintf("bookings/%d", bookingID), nil)

	status, body, err := c.do(ctx, "get_booking", http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	case status >= 400 && status < 500:
		return nil, newValidationError(status, body)
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, status, string(body))
	}

	return decodeBooking(body)
}

// CreateBooking создает запись на слот. subscriptionID может быть nil.
func (c *Client) CreateBooking(ctx context.Context, slotID int64, subscriptionID *int64) (*domain.Booking, error) {
	req := CreateBookingRequest{SlotID: slotID, SubscriptionID: subscriptionID}
	return c.mutateBooking(ctx, "create_booking", c.endpoint("bookings", nil), req)
}

// CancelBooking отменяет запись. reason может быть nil.
func (c *Client) CancelBooking(ctx context.Context, bookingID int64, reason *string) (*domain.Booking, error) {
	target := c.endpoint(fmt.Sprintf("bookings/%d/cancel", bookingID), nil)
	return c.mutateBooking(ctx, "cancel_booking", target, CancelBookingRequest{Reason: reason})
}

// RescheduleBooking переносит запись на другой слот
func (c *Client) RescheduleBooking(ctx context.Context, bookingID, slotID int64) (*domain.Booking, error) {
	target := c.endpoint(fmt.Sprintf("bookings/%d/reschedule", bookingID), nil)
	return c.mutateBooking(ctx, "reschedule_booking", target, RescheduleBookingRequest{SlotID: slotID})
}

func (c *Client) mutateBooking(ctx context.Context, endpoint, target string, payload interface{}) (*domain.Booking, error) {
	status, body, err := c.do(ctx, endpoint, http.MethodPost, target, payload)
	if err != nil {
		return nil, err
	}

	// Обработка статус-кодов
	switch {
	case status == http.StatusOK || status == http.StatusCreated:
	case status >= 400 && status < 500:
		verr := newValidationError(status, body)
		c.log.Warn("%s: rejected by backend with status %d: %s", endpoint, status, verr.Message)
		return nil, verr
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, status, string(body))
	}

	return decodeBooking(body)
}

func decodeBooking(body []byte) (*domain.Booking, error) {
	var booking Booking
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, fmt.Errorf("%w: failed to decode booking: %v", ErrInvalidResponse, err)
	}
	return booking.toDomain(), nil
}

// listAll выкачивает все страницы списка
func listAll[T any](ctx context.Context, c *Client, endpoint, firstURL string) ([]T, error) {
	return pagination.Drain(ctx, firstURL, func(ctx context.Context, pageURL string) (pagination.Page[T], error) {
		status, body, err := c.do(ctx, endpoint, http.MethodGet, c.resolve(pageURL), nil)
		if err != nil {
			return pagination.Page[T]{}, err
		}
		if status != http.StatusOK {
			if status >= 400 && status < 500 {
				return pagination.Page[T]{}, newValidationError(status, body)
			}
			return pagination.Page[T]{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, status, string(body))
		}

		page, err := pagination.DecodePage[T](body)
		if err != nil {
			return pagination.Page[T]{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return page, nil
	})
}

// do выполняет запрос и возвращает статус и тело ответа
func (c *Client) do(ctx context.Context, endpoint, method, target string, payload interface{}) (int, []byte, error) {
	start := time.Now()
	outcome := outcomeError
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackendCall(endpoint, outcome, time.Since(start))
		}
	}()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s: request to %s failed: %v", endpoint, target, err)
		return 0, nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	switch {
	case resp.StatusCode < 300:
		outcome = outcomeOK
	case resp.StatusCode == http.StatusNotFound:
		outcome = outcomeNotFound
	case resp.StatusCode < 500:
		outcome = outcomeValidationFailed
	}

	return resp.StatusCode, body, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: path + "/"})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// resolve приводит ссылку next к абсолютному URL
func (c *Client) resolve(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(parsed).String()
}
