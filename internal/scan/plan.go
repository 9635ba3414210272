package scan

import (
	"fmt"
	"strconv"
	"strings"

	"paramkit/internal/domain"
)

const planParam = "scan_plan"

// Plan describes what a scan covers, in parameter values.
type Plan struct {
	Targets *domain.AddressList
	// Exclusions holds negated ranges; each one removes its span from the targets.
	Exclusions []domain.AddressRange
	// Ports holds the ports to probe. Negated entries are excluded instead.
	Ports *domain.PortList
}

// NewPlan parses list text for targets and ports, and range text for each exclusion.
func NewPlan(targets, ports string, exclusions ...string) (*Plan, error) {
	p := &Plan{Targets: &domain.AddressList{}, Ports: &domain.PortList{}}
	if err := p.Targets.Assign(targets); err != nil {
		return nil, fmt.Errorf("targets: %w", err)
	}
	if err := p.Ports.Assign(ports); err != nil {
		return nil, fmt.Errorf("ports: %w", err)
	}
	for _, text := range exclusions {
		r, err := domain.NewAddressRange(text)
		if err != nil {
			return nil, fmt.Errorf("exclusion %q: %w", text, err)
		}
		p.Exclusions = append(p.Exclusions, r)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the plan can be expressed as nmap arguments.
func (p *Plan) Validate() error {
	if p.Targets == nil || p.Targets.Len() == 0 {
		return domain.FormatError(planParam, "", "at least one target is required")
	}
	for _, r := range p.Exclusions {
		text := r.String()
		if !r.Negated {
			return domain.FormatError(planParam, text, "exclusion ranges must be negated")
		}
		if r.From.Family() != r.To.Family() {
			return domain.FormatError(planParam, text, "exclusion range mixes address families")
		}
		if r.From.Family() == domain.FamilyIPv6 && r.From.Address() != r.To.Address() {
			return domain.FormatError(planParam, text, "IPv6 exclusions must be a single address")
		}
		if r.From.Family() == domain.FamilyIPv4 && ipv4Number(r.From) > ipv4Number(r.To) {
			return domain.RangeError(planParam, text, "exclusion range ends before it starts")
		}
	}
	return nil
}

// TargetSpecs renders each target for nmap. Targets with a prefix keep their CIDR form.
func (p *Plan) TargetSpecs() []string {
	if p.Targets == nil {
		return nil
	}
	var specs []string
	for _, a := range p.Targets.Elements() {
		if a.HasPrefix() {
			specs = append(specs, a.String())
			continue
		}
		specs = append(specs, a.Address())
	}
	return specs
}

// ExcludeSpecs renders the negated exclusion ranges. IPv4 spans that differ
// only in the last octet use nmap's octet range form, wider spans become the
// covering CIDR blocks. Ranges rejected by Validate are skipped.
func (p *Plan) ExcludeSpecs() []string {
	var specs []string
	for _, r := range p.Exclusions {
		if !r.Negated || r.From.Family() != r.To.Family() {
			continue
		}
		switch r.From.Family() {
		case domain.FamilyIPv6:
			if r.From.Address() == r.To.Address() {
				specs = append(specs, r.From.Address())
			}
		case domain.FamilyIPv4:
			specs = append(specs, ipv4RangeSpecs(ipv4Number(r.From), ipv4Number(r.To))...)
		}
	}
	return specs
}

// PortSpec joins the ports to probe, or returns "" to use nmap's defaults.
func (p *Plan) PortSpec() string {
	return p.portSpec(false)
}

// ExcludedPortSpec joins the negated ports.
func (p *Plan) ExcludedPortSpec() string {
	return p.portSpec(true)
}

func (p *Plan) portSpec(negated bool) string {
	if p.Ports == nil {
		return ""
	}
	var parts []string
	for _, port := range p.Ports.Ports() {
		if port.Negated() != negated || port.IsEmpty() {
			continue
		}
		lo, hi := port.Bounds()
		if lo == hi {
			parts = append(parts, strconv.Itoa(lo))
			continue
		}
		parts = append(parts, strconv.Itoa(lo)+"-"+strconv.Itoa(hi))
	}
	return strings.Join(parts, ",")
}

func ipv4Number(a domain.PolymorphicAddress) uint32 {
	return uint32(a.Part(0))<<24 | uint32(a.Part(1))<<16 | uint32(a.Part(2))<<8 | uint32(a.Part(3))
}

func formatIPv4(n uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", n>>24, n>>16&0xff, n>>8&0xff, n&0xff)
}

func ipv4RangeSpecs(lo, hi uint32) []string {
	if lo > hi {
		return nil
	}
	if lo == hi {
		return []string{formatIPv4(lo)}
	}
	if lo>>8 == hi>>8 {
		return []string{fmt.Sprintf("%s-%d", formatIPv4(lo), hi&0xff)}
	}

	var specs []string
	for cur := uint64(lo); cur <= uint64(hi); {
		size := uint64(1)
		bits := 32
		for bits > 0 {
			next := size << 1
			if cur%next != 0 || cur+next-1 > uint64(hi) {
				break
			}
			size = next
			bits--
		}
		if bits == 32 {
			specs = append(specs, formatIPv4(uint32(cur)))
		} else {
			specs = append(specs, fmt.Sprintf("%s/%d", formatIPv4(uint32(cur)), bits))
		}
		cur += size
	}
	return specs
}
