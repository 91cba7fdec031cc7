package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/internal/store"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// YearsResponse lists the financial years with registered rules
type YearsResponse struct {
	FinancialYears []string `json:"financialYears"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// calculate handles POST /api/v1/tax/calculate
func (s *Server) calculate(c echo.Context) error {
	req, err := s.parser.Decode(c.Request().Body)
	if err != nil {
		return err
	}
	result, err := s.engine.Compute(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// years handles GET /api/v1/tax/years
func (s *Server) years(c echo.Context) error {
	return c.JSON(http.StatusOK, YearsResponse{FinancialYears: s.engine.Years()})
}

// createRecord computes the posted request and saves request and result
func (s *Server) createRecord(c echo.Context) error {
	rec, err := s.computeRecord(c)
	if err != nil {
		return err
	}
	if err := s.records.Save(c.Request().Context(), rec); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

func (s *Server) listRecords(c echo.Context) error {
	records, err := s.records.List(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) getRecord(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	rec, err := s.records.Get(c.Request().Context(), userID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// updateRecord recomputes the record from the edited request
func (s *Server) updateRecord(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	rec, err := s.computeRecord(c)
	if err != nil {
		return err
	}
	rec.ID = id
	if err := s.records.Update(c.Request().Context(), rec); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) deleteRecord(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	if err := s.records.Delete(c.Request().Context(), userID(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) computeRecord(c echo.Context) (*store.Record, error) {
	req, err := s.parser.Decode(c.Request().Body)
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Compute(req)
	if err != nil {
		return nil, err
	}
	return &store.Record{
		UserID:        userID(c),
		FinancialYear: result.FinancialYear,
		Request:       *req,
		Result:        *result,
	}, nil
}

// requireUser rejects requests without a user id header
func requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
		if id == "" {
			return ierr.NewError("missing user id").
				WithHintf("The %s header is required", HeaderUserID).
				Mark(ierr.ErrUnauthorized)
		}
		c.Set(userIDKey, id)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func recordID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ierr.WithError(err).
			WithHint("Record id must be a UUID").
			WithReportableDetails(map[string]any{"id": c.Param("id")}).
			Mark(ierr.ErrInvalidInput)
	}
	return id, nil
}
