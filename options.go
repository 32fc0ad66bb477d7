package strp

import (
	"github.com/pkg/errors"

	"github.com/HammadMal/STRP-1/internal/identity"
	"github.com/HammadMal/STRP-1/internal/locate"
	"github.com/HammadMal/STRP-1/internal/util"
)

type Option func(*OutcomeService) error

//
// apply all supplied options to the service
// returns any error encountered while applying the options
//
func (srvc *OutcomeService) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(srvc); err != nil {
			return err
		}
	}
	return nil
}

//
// set a name for this service instance,
// if not provided a hashid will be generated
//
func Name(name string) Option {
	return func(s *OutcomeService) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

//
// set a unique id for this service instance,
// if not provided a nuid will be generated
//
func ID(id string) Option {
	return func(s *OutcomeService) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

//
// set the hostname/address for this service
//
func Host(hostName string) Option {
	return func(s *OutcomeService) error {
		if hostName != "" {
			s.serviceHost = hostName
			return nil
		}
		s.serviceHost = "localhost"
		return nil
	}
}

//
// set the port for this service,
// 0 picks an available port
//
func Port(port int) Option {
	return func(s *OutcomeService) error {
		if port < 0 {
			return errors.Errorf("invalid port %d", port)
		}
		if port != 0 {
			s.servicePort = port
			return nil
		}
		var err error
		s.servicePort, err = util.AvailablePort()
		return err
	}
}

//
// set the institutional mail domain appended to
// canonical student ids
//
func EmailDomain(domain string) Option {
	return func(s *OutcomeService) error {
		if domain == "" {
			domain = identity.DefaultDomain
		}
		s.cfg.EmailDomain = domain
		return nil
	}
}

//
// use this row as the module row when no sheet carries
// the anchor, negative disables the fallback
//
func FallbackAnchorRow(row int) Option {
	return func(s *OutcomeService) error {
		if row < 0 {
			row = locate.NoFallback
		}
		s.cfg.Locate.FallbackAnchorRow = row
		return nil
	}
}

//
// rows with this many characters or fewer are
// dropped while cleaning
//
func ShortRowLimit(limit int) Option {
	return func(s *OutcomeService) error {
		if limit < 0 {
			return errors.Errorf("invalid short row limit %d", limit)
		}
		s.cfg.Clean.ShortRowLimit = limit
		return nil
	}
}
