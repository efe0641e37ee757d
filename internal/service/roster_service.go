package service

import (
	"context"
	"encoding/json"
	"fmt"
	"fusion_backend/internal/config"
	"fusion_backend/internal/model"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// RosterService 从 Data Dragon 拉取英雄列表和原画
type RosterService struct {
	config config.DataDragonConfig
	client *http.Client
}

func NewRosterService(cfg config.DataDragonConfig) *RosterService {
	return &RosterService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *RosterService) baseURL() string {
	return strings.TrimRight(s.config.BaseURL, "/")
}

func (s *RosterService) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("data dragon error (status %d): %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// LatestVersion 版本列表第一个为最新
func (s *RosterService) LatestVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := s.getJSON(ctx, s.baseURL()+"/api/versions.json", &versions); err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("data dragon returned no versions")
	}
	return versions[0], nil
}

// Roster 按 ID 排序，保证同一种子下选择可复现
func (s *RosterService) Roster(ctx context.Context) ([]model.Entity, error) {
	version, err := s.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data map[string]struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", s.baseURL(), version, s.config.Locale)
	if err := s.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch champions: %w", err)
	}

	roster := make([]model.Entity, 0, len(payload.Data))
	for key, c := range payload.Data {
		id := c.ID
		if id == "" {
			id = key
		}
		name := c.Name
		if name == "" {
			name = id
		}
		roster = append(roster, model.Entity{ID: id, Name: name})
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster, nil
}

// SplashURL 默认皮肤原画
func (s *RosterService) SplashURL(entity model.Entity) string {
	return fmt.Sprintf("%s/cdn/img/champion/splash/%s_0.jpg", s.baseURL(), entity.ID)
}

func (s *RosterService) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *RosterService) Themes() []string {
	return model.Themes
}
