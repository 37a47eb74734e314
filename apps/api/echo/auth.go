package echoapi

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/auth"
)

const contextTokenKey = "adminToken"

// newJWTConfig returns the JWT auth middleware config.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: auth.SigningMethod,
		ContextKey:    contextTokenKey,
		Claims:        new(auth.Claims),
	}
}

func getContextClaims(ctx echo.Context) (auth.Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*auth.Claims); ok {
			return *claims, nil
		}
	}
	return auth.Claims{}, errUnauthorized
}

// contextClaims returns the claims of the request, if authenticated, for logging.
func contextClaims(ctx echo.Context) auth.Claims {
	claims, _ := getContextClaims(ctx)
	return claims
}

type authApi struct {
	conf     *core.Config
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, conf *core.Config, validate *validator.Validate) {
	api := authApi{conf: conf, validate: validate}

	g.POST("/auth/login", api.login)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := auth.Authenticate(data.Username, data.Password, api.conf)
	if err != nil {
		switch errors.Cause(err) {
		case auth.ErrAuthenticationFailed:
			return errAuthenticationFailed
		case auth.ErrNoAdminPassword:
			return errLoginDisabled
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := auth.GenerateToken(claims, api.conf.SecretKey)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username)
	return validate.Struct(lr)
}
