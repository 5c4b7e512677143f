package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kuruchon/leaveApp/models"
)

// Claims ที่เราคาดหวัง (ตามที่เซ็นใน handlers/auth.go)
type Claims struct {
	Sub  string          `json:"sub"`
	Role models.UserRole `json:"role"`
	Name string          `json:"name"`
	jwt.RegisteredClaims
}

// ดึง token จาก Authorization header
func extractBearer(c echo.Context) (string, bool) {
	h := c.Request().Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func parseClaims(tok, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
		// ป้องกัน alg โดนสลับ
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN_METHOD"})
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CLAIMS"})
	}
	// ตรวจ expiry (กัน lib ถูก config ปิด)
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "TOKEN_EXPIRED"})
	}
	return claims, nil
}

func attach(c echo.Context, claims *Claims) {
	c.Set("user_id", claims.Sub)
	c.Set("role", claims.Role)
	c.Set("name", claims.Name)
}

// RequireAuth ตรวจ JWT (HS256) และแนบ claims ไว้ใน context
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, ok := extractBearer(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "MISSING_AUTH_HEADER"})
			}
			claims, err := parseClaims(tok, secret)
			if err != nil {
				return err
			}
			attach(c, claims)
			return next(c)
		}
	}
}

// AttachUser แนบ claims ถ้ามี token มา แต่ไม่บังคับ
// ใช้กับ endpoint โปรโตคอล action ที่บาง action เป็น public (login, getInitialData)
func AttachUser(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tok, ok := extractBearer(c); ok {
				if claims, err := parseClaims(tok, secret); err == nil {
					attach(c, claims)
				}
			}
			return next(c)
		}
	}
}

// RequireRole จำกัดบทบาท เช่น RequireRole(models.RoleAdmin) หรือ RequireRole(models.RoleTeacher, models.RoleAdmin)
func RequireRole(roles ...models.UserRole) echo.MiddlewareFunc {
	allowed := map[models.UserRole]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(models.UserRole)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}

// CurrentUser อ่านตัวตนจาก context ที่ middleware แนบไว้
func CurrentUser(c echo.Context) (id string, role models.UserRole, name string, ok bool) {
	id, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(models.UserRole)
	name, _ = c.Get("name").(string)
	return id, role, name, id != ""
}
