package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_reservation"
	getSettingsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_settings"
	issueNonceHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/issue_nonce"
	listReservationsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/list_reservations"
	updateCapacityOverrideHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/update_capacity_override"
	updateSettingsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/metrics"
)

// Handlers набор HTTP обработчиков сервиса
type Handlers struct {
	GetAvailability        *getAvailabilityHandler.Handler
	IssueNonce             *issueNonceHandler.Handler
	CreateReservation      *createReservationHandler.Handler
	GetReservation         *getReservationHandler.Handler
	CancelReservation      *cancelReservationHandler.Handler
	ListReservations       *listReservationsHandler.Handler
	GetSettings            *getSettingsHandler.Handler
	UpdateSettings         *updateSettingsHandler.Handler
	UpdateCapacityOverride *updateCapacityOverrideHandler.Handler
}

// RouterOptions параметры сборки роутера
type RouterOptions struct {
	Metrics       *metrics.Metrics // nil - метрики выключены
	MetricsPath   string
	AdminKey      string
	NonceVerifier middleware.NonceVerifier
	RateLimit     int // запросов в минуту с одного IP, 0 - без ограничения
	Logger        middleware.Logger
}

// NewRouter собирает роутер со всеми маршрутами
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	// Маршруты регистрируются прямо на r, без подроутеров:
	// иначе mux теряет несовпадение метода и отвечает 404 вместо 405

	// ============================================================
	// PUBLIC ROUTES (ограничение частоты по IP)
	// ============================================================

	// Один лимитер на все публичные маршруты
	public := func(next http.HandlerFunc) http.Handler { return next }
	if opts.RateLimit > 0 {
		limit := middleware.RateLimit(opts.RateLimit)
		public = func(next http.HandlerFunc) http.Handler { return limit(next) }
	}

	// Форма на сайте: POST date, slot -> [{slot, time}]
	r.Handle("/ajax/availability", public(h.GetAvailability.HandleForm)).Methods(http.MethodPost)

	// Доступные времена на дату и слот
	r.Handle("/api/v1/availability", public(h.GetAvailability.Handle)).Methods(http.MethodGet)

	// Токен для отправки формы бронирования
	r.Handle("/api/v1/nonce", public(h.IssueNonce.Handle)).Methods(http.MethodGet)

	// --- Бронирования гостя ---
	r.Handle("/api/v1/reservations/{reference}", public(h.GetReservation.Handle)).Methods(http.MethodGet)
	r.Handle("/api/v1/reservations/{reference}/cancel", public(h.CancelReservation.Handle)).Methods(http.MethodPatch)

	// Создание бронирования (требует X-Booking-Nonce)
	requireNonce := middleware.RequireNonce(opts.NonceVerifier, domain.ActionCreateReservation, opts.Logger)
	r.Handle("/api/v1/reservations", public(requireNonce(http.HandlerFunc(h.CreateReservation.Handle)).ServeHTTP)).
		Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key)
	// ============================================================

	adminKey := middleware.AdminKey(opts.AdminKey)
	admin := func(next http.HandlerFunc) http.Handler { return adminKey(next) }

	// Рассадка на день
	r.Handle("/api/v1/admin/reservations", admin(h.ListReservations.Handle)).Methods(http.MethodGet)

	// Настройки расписания
	r.Handle("/api/v1/admin/settings", admin(h.GetSettings.Handle)).Methods(http.MethodGet)
	r.Handle("/api/v1/admin/settings", admin(h.UpdateSettings.Handle)).Methods(http.MethodPut)

	// Переопределение вместимости слота на дату
	r.Handle("/api/v1/admin/capacity-overrides", admin(h.UpdateCapacityOverride.Handle)).Methods(http.MethodPut)

	return r
}
