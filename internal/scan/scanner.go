package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"

	"paramkit/internal/domain"
)

// Finding is one port reported by nmap, parsed back into parameter values.
type Finding struct {
	Address  domain.PolymorphicAddress
	MAC      domain.MacAddressValue
	Port     domain.PortValue
	Protocol string
	State    string
	Service  string
}

// Open reports whether nmap found the port open.
func (f Finding) Open() bool { return f.State == "open" }

// Scanner runs nmap for a Plan
type Scanner struct {
	plan              *Plan
	timeout           time.Duration
	serviceDetection  bool
	osDetection       bool
	skipHostDiscovery bool
	binaryPath        string
	logger            *slog.Logger
}

// Option is a functional option for configuring Scanner
type Option func(*Scanner)

// WithTimeout sets the timeout for the entire nmap scan
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		s.timeout = d
	}
}

// WithServiceDetection enables or disables service version detection (-sV)
func WithServiceDetection(enabled bool) Option {
	return func(s *Scanner) {
		s.serviceDetection = enabled
	}
}

// WithOSDetection enables or disables OS detection (-O).
// OS detection requires root privileges.
func WithOSDetection(enabled bool) Option {
	return func(s *Scanner) {
		s.osDetection = enabled
	}
}

// WithSkipHostDiscovery treats all hosts as online (-Pn)
func WithSkipHostDiscovery(skip bool) Option {
	return func(s *Scanner) {
		s.skipHostDiscovery = skip
	}
}

// WithBinaryPath runs nmap from path instead of looking it up in PATH
func WithBinaryPath(path string) Option {
	return func(s *Scanner) {
		s.binaryPath = path
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScanner creates a scanner for plan
func NewScanner(plan *Plan, opts ...Option) *Scanner {
	s := &Scanner{
		plan:             plan,
		timeout:          10 * time.Minute,
		serviceDetection: true,
		logger:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "scan")
	return s
}

// Arguments lists the plan-derived nmap arguments, in the order Options applies them.
func (s *Scanner) Arguments() []string {
	args := append([]string(nil), s.plan.TargetSpecs()...)
	if ports := s.plan.PortSpec(); ports != "" {
		args = append(args, "-p", ports)
	}
	if ex := s.plan.ExcludeSpecs(); len(ex) > 0 {
		args = append(args, "--exclude", strings.Join(ex, ","))
	}
	if ports := s.plan.ExcludedPortSpec(); ports != "" {
		args = append(args, "--exclude-ports", ports)
	}
	if s.serviceDetection {
		args = append(args, "-sV")
	}
	if s.osDetection {
		args = append(args, "-O")
	}
	if s.skipHostDiscovery {
		args = append(args, "-Pn")
	}
	return args
}

// Options builds the nmap options for the plan
func (s *Scanner) Options() []nmap.Option {
	opts := []nmap.Option{nmap.WithTargets(s.plan.TargetSpecs()...)}

	if ports := s.plan.PortSpec(); ports != "" {
		opts = append(opts, nmap.WithPorts(ports))
	}
	if ex := s.plan.ExcludeSpecs(); len(ex) > 0 {
		opts = append(opts, nmap.WithCustomArguments("--exclude", strings.Join(ex, ",")))
	}
	if ports := s.plan.ExcludedPortSpec(); ports != "" {
		opts = append(opts, nmap.WithCustomArguments("--exclude-ports", ports))
	}
	if s.serviceDetection {
		opts = append(opts, nmap.WithServiceInfo())
	}
	if s.osDetection {
		opts = append(opts, nmap.WithOSDetection())
	}
	if s.skipHostDiscovery {
		opts = append(opts, nmap.WithSkipHostDiscovery())
	}
	if s.binaryPath != "" {
		opts = append(opts, nmap.WithBinaryPath(s.binaryPath))
	}
	return opts
}

// Run validates the plan, runs nmap and returns every reported port
func (s *Scanner) Run(ctx context.Context) ([]Finding, error) {
	if err := s.plan.Validate(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	scanner, err := nmap.NewScanner(ctx, s.Options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	s.logger.Info("scan started", "targets", s.plan.TargetSpecs(), "ports", s.plan.PortSpec())
	result, warnings, err := scanner.Run()
	if warnings != nil && len(*warnings) > 0 {
		s.logger.Warn("scan warnings", "warnings", *warnings)
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("scan timed out after %s: %w", s.timeout, err)
		}
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	findings := s.findings(result)
	s.logger.Info("scan complete", "findings", len(findings))
	return findings, nil
}

// findings converts nmap results of hosts that are up
func (s *Scanner) findings(result *nmap.Run) []Finding {
	if result == nil {
		return nil
	}

	var out []Finding
	for _, host := range result.Hosts {
		if host.Status.State != "up" {
			continue
		}

		var addr domain.PolymorphicAddress
		var mac domain.MacAddressValue
		for _, a := range host.Addresses {
			switch a.AddrType {
			case "ipv4", "ipv6":
				// Prefer IPv4 when nmap reports both
				if addr.IsAssigned() && addr.Family() == domain.FamilyIPv4 {
					continue
				}
				if err := addr.Assign(a.Addr); err != nil {
					s.logger.Warn("unparseable host address", "address", a.Addr, "error", err)
				}
			case "mac":
				if err := mac.Assign(strings.ToLower(a.Addr)); err != nil {
					s.logger.Warn("unparseable mac address", "address", a.Addr, "error", err)
				}
			}
		}
		if !addr.IsAssigned() {
			continue
		}

		for _, port := range host.Ports {
			var p domain.PortValue
			if err := p.SetPort(int(port.ID)); err != nil {
				continue
			}
			out = append(out, Finding{
				Address:  addr,
				MAC:      mac,
				Port:     p,
				Protocol: port.Protocol,
				State:    port.State.State,
				Service:  port.Service.Name,
			})
		}
	}
	return out
}

// Hosts groups open findings by address into host records stamped with clock.
func Hosts(findings []Finding, clock domain.Clock) []*domain.Host {
	var hosts []*domain.Host
	index := make(map[string]*domain.Host)
	for _, f := range findings {
		key := f.Address.String()
		h, ok := index[key]
		if !ok {
			h = domain.NewHost()
			h.Address = f.Address
			h.MAC = f.MAC
			h.Touch(clock)
			index[key] = h
			hosts = append(hosts, h)
		}
		if f.Open() {
			h.Ports.Put(f.Port)
		}
	}
	return hosts
}
