package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"vfd-portal/core/config"
	"vfd-portal/core/constants"
	"vfd-portal/core/controller"
	"vfd-portal/core/errors"
	"vfd-portal/core/logger"
	"vfd-portal/core/utils"
	memberEntity "vfd-portal/modules/member/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ActorResolver interface {
	ResolveActor(ctx context.Context, authID uuid.UUID) (*memberEntity.Actor, *errors.AppError)
}

type Middleware struct {
	resolver ActorResolver
	auth     config.AuthConfig
}

func NewMiddleware(resolver ActorResolver, auth config.AuthConfig) *Middleware {
	return &Middleware{resolver: resolver, auth: auth}
}

// AuthMiddleware verifies the bearer token and stores the resolved actor in the context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrInvalidTokenFormat, "Invalid authorization header format")
			}

			claims, err := utils.ValidateAndParseToken(token, m.auth.JWTSecret, m.auth.Issuer)
			if errors.Is(err, utils.ErrTokenExpired) {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrTokenExpired, "Token expired")
			}
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid token")
			}

			authID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid token subject")
			}

			actor, appErr := m.resolver.ResolveActor(c.Request().Context(), authID)
			if appErr != nil {
				return controller.NewErrorResponse(controller.StatusFor(appErr.Code), appErr.Code, appErr.Message)
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextActor, actor)
			return next(c)
		}
	}
}

func ActorFromContext(c echo.Context) (*memberEntity.Actor, bool) {
	actor, ok := c.Get(constants.ContextActor).(*memberEntity.Actor)
	return actor, ok && actor != nil
}

// RequestLogger logs one line per request with logrus fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := logger.Logger().WithFields(logrus.Fields{
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     res.Status,
				"latency":    time.Since(start).String(),
				"client_ip":  c.RealIP(),
			})
			switch {
			case res.Status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case res.Status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request handled")
			}
			return nil
		}
	}
}
