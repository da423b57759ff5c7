package presentation

import (
	"github.com/sorenhq/namevault/internal/registry/domain"
	"github.com/sorenhq/namevault/internal/registry/resolver"
)

// EntryDTO represents one name registration for presentation.
type EntryDTO struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// StatsDTO represents resolver counters for presentation.
type StatsDTO struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	Operations    int64   `json:"operations"`
	Creates       int64   `json:"creates"`
	Gets          int64   `json:"gets"`
	Deletes       int64   `json:"deletes"`
	Lists         int64   `json:"lists"`
	Inserts       int64   `json:"inserts"`
	Failures      int64   `json:"failures"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
}

// FromDomainEntry converts a domain entry to a DTO.
func FromDomainEntry(e domain.Entry) EntryDTO {
	return EntryDTO{
		Name: e.Name,
		UID:  e.UID.String(),
	}
}

// FromDomainEntries converts a slice of domain entries to DTOs.
func FromDomainEntries(entries []domain.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FromDomainEntry(e)
	}
	return dtos
}

// FromStats converts a resolver stats snapshot to a DTO.
func FromStats(s resolver.Stats) StatsDTO {
	return StatsDTO{
		UptimeSeconds: s.Uptime().Seconds(),
		Operations:    s.Total(),
		Creates:       s.Creates,
		Gets:          s.Gets,
		Deletes:       s.Deletes,
		Lists:         s.Lists,
		Inserts:       s.Inserts,
		Failures:      s.Failures,
		CacheHits:     s.CacheHits,
		CacheMisses:   s.CacheMisses,
	}
}
