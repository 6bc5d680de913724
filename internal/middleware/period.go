package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-dashboard/internal/constants"
	"github.com/yukikurage/resource-dashboard/internal/logger"
	"github.com/yukikurage/resource-dashboard/internal/period"
)

// DashboardPath is where callers without a selected period are sent.
const DashboardPath = "/api/dashboard"

// SelectPeriod is the dashboard's resolver. An explicit ?year=&month= pair
// wins and becomes the session default; otherwise the session default is used,
// then the current month.
func SelectPeriod(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		res := period.Resolve(queryPeriod(c), storedPeriod(session), now())
		if res.Persist {
			session.Set(constants.SessionKeySelectedYear, res.Period.Year)
			session.Set(constants.SessionKeySelectedMonth, res.Period.Month)
			if err := session.Save(); err != nil {
				// The selection still applies to this request.
				logger.LogError("middleware", "SelectPeriod", "save session", map[string]interface{}{
					"period": res.Period.String(),
				}, err)
			}
		}

		setPeriod(c, res)
		c.Next()
	}
}

// PeriodContext resolves the period of a request without touching the
// session. A ?year=&month= pair filters this request only.
func PeriodContext(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stored := storedPeriod(sessions.Default(c))
		if stored != nil {
			c.Set(constants.ContextKeySessionPeriod, *stored)
		}

		setPeriod(c, period.Lookup(queryPeriod(c), stored, now()))
		c.Next()
	}
}

// RequirePeriod redirects to the dashboard when no period was ever selected
// there, and pins the request to that selection. It must run after
// PeriodContext.
func RequirePeriod() gin.HandlerFunc {
	return func(c *gin.Context) {
		selected, ok := c.Value(constants.ContextKeySessionPeriod).(period.Period)
		if !IsPeriodSelected(c) || !ok {
			c.Redirect(http.StatusSeeOther, DashboardPath)
			c.Abort()
			return
		}
		c.Set(constants.ContextKeyPeriod, selected)
		c.Next()
	}
}

// GetPeriod retrieves the resolved period from context
func GetPeriod(c *gin.Context) period.Period {
	if v, exists := c.Get(constants.ContextKeyPeriod); exists {
		if p, ok := v.(period.Period); ok {
			return p
		}
	}
	return period.Of(time.Now())
}

// IsPeriodSelected reports whether a period was selected on the dashboard
func IsPeriodSelected(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyPeriodSelected)
}

func setPeriod(c *gin.Context, res period.Resolution) {
	c.Set(constants.ContextKeyPeriod, res.Period)
	c.Set(constants.ContextKeyPeriodSelected, res.Selected)
}

func queryPeriod(c *gin.Context) *period.Period {
	if p, ok := period.Parse(c.Query("year"), c.Query("month")); ok {
		return &p
	}
	return nil
}

func storedPeriod(session sessions.Session) *period.Period {
	year, okYear := sessionInt(session.Get(constants.SessionKeySelectedYear))
	month, okMonth := sessionInt(session.Get(constants.SessionKeySelectedMonth))
	if !okYear || !okMonth {
		return nil
	}
	p := period.Period{Year: year, Month: month}
	if !p.Valid() {
		return nil
	}
	return &p
}

func sessionInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
