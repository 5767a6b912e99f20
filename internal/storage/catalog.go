package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// --- Inventory ---

func (s *Store) ListInventoryItems() ([]InventoryItem, error) {
	rows, err := s.db.Query(`
		SELECT id, sku, name, category, current_stock, min_stock, max_stock, unit_cost, supplier_id, last_updated
		FROM inventory_items ORDER BY sku ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// SearchInventoryItems matches query case-insensitively against sku, name,
// and category, returning at most limit items.
func (s *Store) SearchInventoryItems(query string, limit int) ([]InventoryItem, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, sku, name, category, current_stock, min_stock, max_stock, unit_cost, supplier_id, last_updated
		FROM inventory_items
		WHERE sku LIKE ? COLLATE NOCASE OR name LIKE ? COLLATE NOCASE OR category LIKE ? COLLATE NOCASE
		ORDER BY sku ASC LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// UpsertInventoryItem inserts an item or, if one with the same sku exists,
// updates it in place. The sku is the natural key for seeding.
func (s *Store) UpsertInventoryItem(item InventoryItem) error {
	_, err := s.db.Exec(`
		INSERT INTO inventory_items (sku, name, category, current_stock, min_stock, max_stock, unit_cost, supplier_id, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			current_stock = excluded.current_stock,
			min_stock = excluded.min_stock,
			max_stock = excluded.max_stock,
			unit_cost = excluded.unit_cost,
			supplier_id = excluded.supplier_id,
			last_updated = excluded.last_updated`,
		item.SKU, item.Name, item.Category, item.CurrentStock, item.MinStock,
		item.MaxStock, item.UnitCost, item.SupplierID, formatTime(item.LastUpdated),
	)
	return err
}

// CountInventoryItems returns the total item count and the count of items at
// or below their minimum stock level.
func (s *Store) CountInventoryItems() (total, lowStock int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COUNT(CASE WHEN current_stock <= min_stock THEN 1 END)
		FROM inventory_items`).Scan(&total, &lowStock)
	return total, lowStock, err
}

// TotalInventoryValue returns sum(current_stock * unit_cost) over all items.
func (s *Store) TotalInventoryValue() (float64, error) {
	var value sql.NullFloat64
	err := s.db.QueryRow(`SELECT SUM(current_stock * unit_cost) FROM inventory_items`).Scan(&value)
	return value.Float64, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInventoryItem(row rowScanner) (InventoryItem, error) {
	var item InventoryItem
	var supplierID sql.NullInt64
	var lastUpdated string
	if err := row.Scan(&item.ID, &item.SKU, &item.Name, &item.Category,
		&item.CurrentStock, &item.MinStock, &item.MaxStock, &item.UnitCost,
		&supplierID, &lastUpdated); err != nil {
		return InventoryItem{}, err
	}
	if supplierID.Valid {
		item.SupplierID = &supplierID.Int64
	}
	t, err := parseTime(lastUpdated)
	if err != nil {
		return InventoryItem{}, fmt.Errorf("parsing last_updated: %w", err)
	}
	item.LastUpdated = t
	return item, nil
}

// --- Suppliers ---

func (s *Store) ListSuppliers() ([]Supplier, error) {
	rows, err := s.db.Query(`
		SELECT id, name, contact_email, performance_score, on_time_delivery, quality_score, lead_time_days, status
		FROM suppliers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSuppliers(rows)
}

// SearchSuppliers matches query case-insensitively against supplier names,
// returning at most limit suppliers.
func (s *Store) SearchSuppliers(query string, limit int) ([]Supplier, error) {
	rows, err := s.db.Query(`
		SELECT id, name, contact_email, performance_score, on_time_delivery, quality_score, lead_time_days, status
		FROM suppliers WHERE name LIKE ? COLLATE NOCASE
		ORDER BY name ASC LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSuppliers(rows)
}

func collectSuppliers(rows *sql.Rows) ([]Supplier, error) {
	var results []Supplier
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.ContactEmail, &sup.PerformanceScore,
			&sup.OnTimeDelivery, &sup.QualityScore, &sup.LeadTimeDays, &sup.Status); err != nil {
			return nil, err
		}
		results = append(results, sup)
	}
	return results, rows.Err()
}

// UpsertSupplier inserts a supplier or updates the existing row with the same
// name, and returns the row id either way.
func (s *Store) UpsertSupplier(sup Supplier) (int64, error) {
	status := sup.Status
	if status == "" {
		status = "active"
	}
	_, err := s.db.Exec(`
		INSERT INTO suppliers (name, contact_email, performance_score, on_time_delivery, quality_score, lead_time_days, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			contact_email = excluded.contact_email,
			performance_score = excluded.performance_score,
			on_time_delivery = excluded.on_time_delivery,
			quality_score = excluded.quality_score,
			lead_time_days = excluded.lead_time_days,
			status = excluded.status`,
		sup.Name, sup.ContactEmail, sup.PerformanceScore, sup.OnTimeDelivery,
		sup.QualityScore, sup.LeadTimeDays, status,
	)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM suppliers WHERE name = ?`, sup.Name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// AverageSupplierPerformance returns the mean performance_score across all
// suppliers, or 0 when there are none.
func (s *Store) AverageSupplierPerformance() (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`SELECT AVG(performance_score) FROM suppliers`).Scan(&avg)
	return avg.Float64, err
}

// --- KPI Metrics ---

func (s *Store) ListKPIMetrics() ([]KPIMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, name, value, target, unit, category, timestamp
		FROM kpi_metrics ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []KPIMetric
	for rows.Next() {
		m, err := scanKPIMetric(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// LatestKPIMetric returns the most recent metric with the given name.
// Metric names are lookup keys by convention, not enforced unique.
func (s *Store) LatestKPIMetric(name string) (KPIMetric, error) {
	row := s.db.QueryRow(`
		SELECT id, name, value, target, unit, category, timestamp
		FROM kpi_metrics WHERE name = ? ORDER BY timestamp DESC, id DESC LIMIT 1`, name)
	m, err := scanKPIMetric(row)
	if err == sql.ErrNoRows {
		return KPIMetric{}, ErrNotFound
	}
	return m, err
}

// UpsertKPIMetric inserts a metric or updates the existing row with the same
// name. Seeding only; regular metric appends go through plain inserts.
func (s *Store) UpsertKPIMetric(m KPIMetric) error {
	var existing int64
	err := s.db.QueryRow(`SELECT id FROM kpi_metrics WHERE name = ? LIMIT 1`, m.Name).Scan(&existing)
	if err == sql.ErrNoRows {
		_, err := s.db.Exec(`
			INSERT INTO kpi_metrics (name, value, target, unit, category, timestamp)
			VALUES (?, ?, ?, ?, ?, ?)`,
			m.Name, m.Value, m.Target, m.Unit, m.Category, formatTime(m.Timestamp))
		return err
	}
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		UPDATE kpi_metrics SET value = ?, target = ?, unit = ?, category = ?, timestamp = ?
		WHERE id = ?`,
		m.Value, m.Target, m.Unit, m.Category, formatTime(m.Timestamp), existing)
	return err
}

func scanKPIMetric(row rowScanner) (KPIMetric, error) {
	var m KPIMetric
	var target sql.NullFloat64
	var timestamp string
	if err := row.Scan(&m.ID, &m.Name, &m.Value, &target, &m.Unit, &m.Category, &timestamp); err != nil {
		return KPIMetric{}, err
	}
	if target.Valid {
		m.Target = &target.Float64
	}
	t, err := parseTime(timestamp)
	if err != nil {
		return KPIMetric{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	m.Timestamp = t
	return m, nil
}

// --- Demand Forecasts ---

func (s *Store) SaveDemandForecast(f DemandForecast) error {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO demand_forecasts (sku, forecast_date, forecasted_demand, actual_demand, accuracy, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.SKU, f.ForecastDate.UTC().Format("2006-01-02"), f.ForecastedDemand,
		f.ActualDemand, f.Accuracy, formatTime(createdAt),
	)
	return err
}

func (s *Store) ListDemandForecasts() ([]DemandForecast, error) {
	rows, err := s.db.Query(`
		SELECT id, sku, forecast_date, forecasted_demand, actual_demand, accuracy, created_at
		FROM demand_forecasts ORDER BY forecast_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DemandForecast
	for rows.Next() {
		var f DemandForecast
		var actual sql.NullInt64
		var accuracy sql.NullFloat64
		var forecastDate, createdAt string
		if err := rows.Scan(&f.ID, &f.SKU, &forecastDate, &f.ForecastedDemand,
			&actual, &accuracy, &createdAt); err != nil {
			return nil, err
		}
		if actual.Valid {
			v := int(actual.Int64)
			f.ActualDemand = &v
		}
		if accuracy.Valid {
			f.Accuracy = &accuracy.Float64
		}
		if f.ForecastDate, err = time.Parse("2006-01-02", forecastDate); err != nil {
			return nil, fmt.Errorf("parsing forecast_date: %w", err)
		}
		if f.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

// --- Alerts ---

// ListActiveAlerts returns alerts with status=active, newest first.
func (s *Store) ListActiveAlerts() ([]Alert, error) {
	rows, err := s.db.Query(`
		SELECT id, type, title, message, priority, status, created_at, resolved_at
		FROM alerts WHERE status = ? ORDER BY created_at DESC, id DESC`, AlertActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func collectAlerts(rows *sql.Rows) ([]Alert, error) {
	var results []Alert
	for rows.Next() {
		var a Alert
		var createdAt string
		var resolvedAt sql.NullString
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Priority,
			&a.Status, &createdAt, &resolvedAt); err != nil {
			return nil, err
		}
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		a.CreatedAt = t
		if resolvedAt.Valid {
			rt, err := parseTime(resolvedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parsing resolved_at: %w", err)
			}
			a.ResolvedAt = &rt
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func (s *Store) GetAlert(id int64) (Alert, error) {
	var a Alert
	var createdAt string
	var resolvedAt sql.NullString
	err := s.db.QueryRow(`
		SELECT id, type, title, message, priority, status, created_at, resolved_at
		FROM alerts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Priority, &a.Status, &createdAt, &resolvedAt)
	if err == sql.ErrNoRows {
		return Alert{}, ErrNotFound
	}
	if err != nil {
		return Alert{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return Alert{}, fmt.Errorf("parsing created_at: %w", err)
	}
	a.CreatedAt = t
	if resolvedAt.Valid {
		rt, err := parseTime(resolvedAt.String)
		if err != nil {
			return Alert{}, fmt.Errorf("parsing resolved_at: %w", err)
		}
		a.ResolvedAt = &rt
	}
	return a, nil
}

// ResolveAlert transitions an alert to resolved and stamps resolved_at.
// Resolving an already-resolved alert succeeds and re-stamps resolved_at.
func (s *Store) ResolveAlert(id int64, at time.Time) error {
	res, err := s.db.Exec(`UPDATE alerts SET status = ?, resolved_at = ? WHERE id = ?`,
		AlertResolved, formatTime(at), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertAlert inserts an alert or updates the existing row with the same
// title. The title is the natural key for seeding.
func (s *Store) UpsertAlert(a Alert) error {
	priority := a.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	status := a.Status
	if status == "" {
		status = AlertActive
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO alerts (type, title, message, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			type = excluded.type,
			message = excluded.message,
			priority = excluded.priority`,
		a.Type, a.Title, a.Message, priority, status, formatTime(createdAt),
	)
	return err
}

// CountAlerts returns the number of active alerts and how many of those are
// critical priority.
func (s *Store) CountAlerts() (active, critical int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COUNT(CASE WHEN priority = ? THEN 1 END)
		FROM alerts WHERE status = ?`, PriorityCritical, AlertActive).Scan(&active, &critical)
	return active, critical, err
}

// --- Conversations ---

func (s *Store) SaveConversation(c Conversation) (int64, error) {
	timestamp := c.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	res, err := s.db.Exec(`
		INSERT INTO conversations (session_id, message, response, timestamp)
		VALUES (?, ?, ?, ?)`,
		c.SessionID, c.Message, c.Response, formatTime(timestamp),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListConversations returns exchanges newest first. When sessionID is
// non-empty, only that session's exchanges are returned.
func (s *Store) ListConversations(sessionID string, limit int) ([]Conversation, error) {
	query := `SELECT id, session_id, message, response, timestamp FROM conversations`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Conversation
	for rows.Next() {
		var c Conversation
		var timestamp string
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Message, &c.Response, &timestamp); err != nil {
			return nil, err
		}
		t, err := parseTime(timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		c.Timestamp = t
		results = append(results, c)
	}
	return results, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
