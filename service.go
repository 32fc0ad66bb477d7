package strp

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/HammadMal/STRP-1/internal/coursefile"
	"github.com/HammadMal/STRP-1/internal/engine"
	"github.com/HammadMal/STRP-1/internal/grid"
	"github.com/HammadMal/STRP-1/internal/identity"
	"github.com/HammadMal/STRP-1/internal/locate"
	"github.com/HammadMal/STRP-1/internal/util"
)

type OutcomeService struct {
	// embedded web server to handle outcome requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// cleaning, layout and id settings handed to the engine
	cfg engine.Config
	// shared by all handlers, holds no per-sheet state
	engine *engine.Engine
}

//
// create a new service instance
//
func New(options ...Option) (*OutcomeService, error) {

	srvc := OutcomeService{
		serviceHost: "localhost",
		cfg:         engine.DefaultConfig(),
	}

	if err := srvc.setOptions(options...); err != nil {
		return nil, err
	}
	if srvc.serviceName == "" {
		srvc.serviceName = util.GenerateName()
	}
	if srvc.serviceID == "" {
		srvc.serviceID = util.GenerateID()
	}
	if srvc.servicePort == 0 {
		port, err := util.AvailablePort()
		if err != nil {
			return nil, err
		}
		srvc.servicePort = port
	}

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)

	srvc.cfg.Logger = srvc.e.Logger
	srvc.engine = engine.New(srvc.cfg)

	// add pingable method to know we're up
	srvc.e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "OK")
	})
	// structure only: clos, mappings and raw student marks
	srvc.e.POST("/extract", srvc.buildExtractHandler())
	// the full scored report
	srvc.e.POST("/outcomes", srvc.buildOutcomesHandler())
	// course file name checks
	srvc.e.POST("/validate/filename", srvc.buildFilenameHandler())

	return &srvc, nil
}

//
// start the service running
//
func (s *OutcomeService) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

//
// a sheet sent to the service, either a bare json array of rows
// or an object of the form {"filename": "...", "grid": [[...], ...]}
//
type sheetRequest struct {
	grid     grid.Grid
	filename string
}

func (r sheetRequest) source() string {
	if r.filename != "" {
		return r.filename
	}
	return "request"
}

func readSheet(c echo.Context) (sheetRequest, error) {
	var req sheetRequest

	body, err := ioutil.ReadAll(c.Request().Body)
	if err != nil {
		return req, errors.Wrap(err, "cannot read request body")
	}
	if !gjson.ValidBytes(body) {
		return req, errors.New("request body is not valid json")
	}

	payload := gjson.ParseBytes(body)
	rows := payload
	if payload.IsObject() {
		req.filename = payload.Get("filename").String()
		rows = payload.Get("grid")
		if !rows.Exists() {
			return req, errors.New("request must supply a grid")
		}
	}

	req.grid, err = grid.FromResult(rows)
	return req, err
}

//
// maps engine failures onto http status codes:
// unreadable or empty sheets are the caller's fault (400),
// sheets we can read but not make sense of are 422
//
func httpError(err error) *echo.HTTPError {
	var verr *identity.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]interface{}{
			"message":     err.Error(),
			"invalid_ids": verr.Raw(),
		})
	case errors.Is(err, locate.ErrAnchorNotFound), errors.Is(err, locate.ErrLayoutTruncated):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, grid.ErrEmpty):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

//
// common response envelope, carries the course details when the
// supplied filename follows the naming convention
//
func (s *OutcomeService) response(req sheetRequest, key string, payload interface{}) map[string]interface{} {
	resp := map[string]interface{}{
		key:                  payload,
		"runID":              util.GenerateID(),
		"outcomeServiceID":   s.serviceID,
		"outcomeServiceName": s.serviceName,
	}
	if req.filename != "" {
		if info, err := coursefile.Parse(req.filename); err == nil {
			resp["course"] = info
		}
	}
	return resp
}

//
// creates the extract method, returns the located structure of the
// sheet without scoring it
//
func (s *OutcomeService) buildExtractHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := readSheet(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		defer util.TimeTrack(time.Now(), "extract "+req.source())

		x, err := s.engine.Extract(req.grid, req.source())
		if err != nil {
			s.e.Logger.Warnf("extract failed: %v", err)
			return httpError(err)
		}
		return c.JSON(http.StatusOK, s.response(req, "extraction", x))
	}
}

//
// creates the main outcomes method, returns clo and plo attainment
// plus final grades for every student on the sheet
//
func (s *OutcomeService) buildOutcomesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := readSheet(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		defer util.TimeTrack(time.Now(), "outcomes "+req.source())

		run, err := s.engine.Process(req.grid, req.source())
		if err != nil {
			s.e.Logger.Warnf("outcomes failed: %v", err)
			return httpError(err)
		}
		return c.JSON(http.StatusOK, s.response(req, "report", run))
	}
}

type fileCheck struct {
	Filename    string           `json:"filename"`
	Valid       bool             `json:"valid"`
	Reason      string           `json:"reason,omitempty"`
	Course      *coursefile.Info `json:"course,omitempty"`
	CourseCode  string           `json:"courseCode,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
}

//
// creates the filename check method, accepts
// {"filename": "..."} or {"filenames": ["...", ...]}
//
func (s *OutcomeService) buildFilenameHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := ioutil.ReadAll(c.Request().Body)
		if err != nil || !gjson.ValidBytes(body) {
			return echo.NewHTTPError(http.StatusBadRequest, "request body is not valid json")
		}

		names := []string{}
		for _, n := range gjson.GetManyBytes(body, "filename", "filenames") {
			if n.IsArray() {
				for _, v := range n.Array() {
					names = append(names, v.String())
				}
			} else if n.Exists() {
				names = append(names, n.String())
			}
		}
		if len(names) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "must supply a value for filename or filenames")
		}

		checks := make([]fileCheck, 0, len(names))
		valid := 0
		for _, n := range names {
			fc := fileCheck{Filename: n}
			info, err := coursefile.Parse(n)
			if err != nil {
				var nerr *coursefile.NameError
				if errors.As(err, &nerr) {
					fc.Reason = nerr.Reason
				} else {
					fc.Reason = err.Error()
				}
			} else {
				valid++
				fc.Valid = true
				fc.Course = &info
				fc.CourseCode = info.CourseCode()
				fc.DisplayName = info.DisplayName()
			}
			checks = append(checks, fc)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"files":   checks,
			"valid":   valid,
			"invalid": len(checks) - valid,
		})
	}
}

//
// shut the server down gracefully
//
func (s *OutcomeService) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		fmt.Println("could not shut down server cleanly: ", err)
		s.e.Logger.Fatal(err)
	}

}

func (s *OutcomeService) PrintConfig() {

	fmt.Println("\n\tSTRP Outcome Service Configuration")
	fmt.Println("\t----------------------------------")
	fmt.Println()

	s.printID()
	s.printEngineConfig()

}

func (s *OutcomeService) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
}

func (s *OutcomeService) printEngineConfig() {
	fmt.Println("\tstudent email domain:\t", s.cfg.EmailDomain)
	fallback := "off"
	if s.cfg.Locate.FallbackAnchorRow >= 0 {
		fallback = fmt.Sprintf("row %d", s.cfg.Locate.FallbackAnchorRow)
	}
	fmt.Println("\tanchor fallback:\t", fallback)
	fmt.Println("\tshort row limit:\t", s.cfg.Clean.ShortRowLimit)
	fmt.Println("\tsparse column limit:\t", s.cfg.Clean.SparseColumnLimit)
}
