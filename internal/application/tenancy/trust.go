package tenancy

import (
	"fmt"
	"net"
	"strings"
)

// HeaderTrust decide si la cabecera TenantID de un llamador se tiene en cuenta.
// La cabecera puede suplantar el tenant del token, así que solo se honra cuando está
// habilitada y, si hay lista de proxies, cuando la petición viene de uno de ellos.
type HeaderTrust struct {
	enabled bool
	nets    []*net.IPNet
}

// NewHeaderTrust construye la política. proxies admite IPs sueltas o CIDRs.
func NewHeaderTrust(enabled bool, proxies []string) (*HeaderTrust, error) {
	ht := &HeaderTrust{enabled: enabled}
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			if ip := net.ParseIP(p); ip != nil && ip.To4() != nil {
				p += "/32"
			} else {
				p += "/128"
			}
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("tenancy: proxy de confianza inválido %q: %w", p, err)
		}
		ht.nets = append(ht.nets, n)
	}
	return ht, nil
}

// Allows indica si la cabecera de un llamador con esa IP es de confianza.
func (h *HeaderTrust) Allows(remoteIP string) bool {
	if h == nil || !h.enabled {
		return false
	}
	if len(h.nets) == 0 {
		return true
	}
	ip := net.ParseIP(strings.TrimSpace(remoteIP))
	if ip == nil {
		return false
	}
	for _, n := range h.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
