package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/pkg/middleware"
	"github.com/Astemirdum/shareit-service/shareit/internal/handler"

	service_mocks "github.com/Astemirdum/shareit-service/shareit/internal/handler/mocks"
)

type services struct {
	user    *service_mocks.MockUserService
	item    *service_mocks.MockItemService
	booking *service_mocks.MockBookingService
	request *service_mocks.MockRequestService
}

func newRouter(c *gomock.Controller) (*echo.Echo, services) {
	svc := services{
		user:    service_mocks.NewMockUserService(c),
		item:    service_mocks.NewMockItemService(c),
		booking: service_mocks.NewMockBookingService(c),
		request: service_mocks.NewMockRequestService(c),
	}
	log := zap.NewExample().Named("test")
	h := handler.New(svc.user, svc.item, svc.booking, svc.request, log)
	return h.NewRouter(), svc
}

// do sends a request as userID; zero leaves the identity header unset.
func do(e *echo.Echo, method, target string, userID int64, body string) *httptest.ResponseRecorder {
	var rb io.Reader = http.NoBody
	if body != "" {
		rb = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, rb)
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != 0 {
		r.Header.Set(middleware.XSharerUserID, strconv.FormatInt(userID, 10))
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func body(w *httptest.ResponseRecorder) string {
	return strings.Trim(w.Body.String(), "\n")
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	e, _ := newRouter(c)

	w := do(e, http.MethodGet, "/manage/health", 0, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", body(w))
}
