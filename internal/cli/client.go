package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// SpecResponse — спецификация из API.
type SpecResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	OwnerID          string `json:"owner_id,omitempty"`
	CurrentVersionID string `json:"current_version_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// VersionResponse — версия из API.
type VersionResponse struct {
	ID               string `json:"id"`
	SpecID           string `json:"spec_id"`
	Number           int    `json:"number"`
	Status           string `json:"status"`
	BasedOnVersionID string `json:"based_on_version_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// CreateSpecResult — результат создания спецификации.
type CreateSpecResult struct {
	Spec           SpecResponse    `json:"spec"`
	InitialVersion VersionResponse `json:"initial_version"`
}

// GraphResponse — снапшот графа из API.
type GraphResponse struct {
	Steps       []map[string]any `json:"steps"`
	Transitions []map[string]any `json:"transitions"`
}

// DiffResponse — структурная разница из API.
type DiffResponse struct {
	Steps struct {
		Added   []map[string]any `json:"added"`
		Removed []map[string]any `json:"removed"`
		Changed []map[string]any `json:"changed"`
	} `json:"steps"`
	Transitions struct {
		Added   []map[string]any `json:"added"`
		Removed []map[string]any `json:"removed"`
	} `json:"transitions"`
}

// UserResponse — пользователь из API.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// --- Request types ---

// CreateSpecRequest — создание спецификации.
type CreateSpecRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateSpecRequest — обновление спецификации.
type UpdateSpecRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Flowdoc API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Specs ---

// ListSpecs возвращает все спецификации.
func (c *Client) ListSpecs() ([]SpecResponse, error) {
	var specs []SpecResponse
	err := c.list("/api/v1/specs", &specs)
	return specs, err
}

// CreateSpec создаёт спецификацию.
func (c *Client) CreateSpec(req CreateSpecRequest) (*CreateSpecResult, error) {
	var result CreateSpecResult
	err := c.post("/api/v1/specs", req, &result)
	return &result, err
}

// GetSpec возвращает спецификацию по ID.
func (c *Client) GetSpec(id string) (*SpecResponse, error) {
	var spec SpecResponse
	err := c.get("/api/v1/specs/"+id, &spec)
	return &spec, err
}

// UpdateSpec обновляет спецификацию.
func (c *Client) UpdateSpec(id string, req UpdateSpecRequest) (*SpecResponse, error) {
	var spec SpecResponse
	err := c.put("/api/v1/specs/"+id, req, &spec)
	return &spec, err
}

// DeleteSpec удаляет спецификацию.
func (c *Client) DeleteSpec(id string) error {
	return c.delete("/api/v1/specs/" + id)
}

// ListVersions возвращает версии спецификации.
func (c *Client) ListVersions(specID string) ([]VersionResponse, error) {
	var versions []VersionResponse
	err := c.list("/api/v1/specs/"+specID+"/versions", &versions)
	return versions, err
}

// --- Versions ---

// GetVersion возвращает версию по ID.
func (c *Client) GetVersion(id string) (*VersionResponse, error) {
	var version VersionResponse
	err := c.get("/api/v1/versions/"+id, &version)
	return &version, err
}

// ForkVersion создаёт копию версии.
func (c *Client) ForkVersion(id string) (*VersionResponse, error) {
	var version VersionResponse
	err := c.post("/api/v1/versions/"+id+"/fork", nil, &version)
	return &version, err
}

// SetVersionStatus устанавливает статус версии.
func (c *Client) SetVersionStatus(id, status string) (*VersionResponse, error) {
	var version VersionResponse
	body := map[string]string{"status": status}
	err := c.put("/api/v1/versions/"+id+"/status", body, &version)
	return &version, err
}

// GetGraph возвращает граф версии.
func (c *Client) GetGraph(versionID string) (*GraphResponse, error) {
	var graph GraphResponse
	err := c.get("/api/v1/versions/"+versionID+"/graph", &graph)
	return &graph, err
}

// DiffVersions сравнивает графы двух версий.
func (c *Client) DiffVersions(fromID, toID string) (*DiffResponse, error) {
	var d DiffResponse
	err := c.get("/api/v1/versions/"+fromID+"/diff/"+toID, &d)
	return &d, err
}

// ImportGraph загружает xlsx-файл и импортирует его в граф версии.
func (c *Client) ImportGraph(versionID, path string) (*GraphResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost,
		c.baseURL+"/api/v1/versions/"+versionID+"/import", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return nil, err
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var graph GraphResponse
	if err := json.Unmarshal(dr.Data, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

// --- Users ---

// ListUsers возвращает всех пользователей.
func (c *Client) ListUsers() ([]UserResponse, error) {
	var users []UserResponse
	err := c.list("/api/v1/users", &users)
	return users, err
}

// CreateUser создаёт пользователя.
func (c *Client) CreateUser(name, email string) (*UserResponse, error) {
	var user UserResponse
	body := map[string]string{"name": name, "email": email}
	err := c.post("/api/v1/users", body, &user)
	return &user, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
