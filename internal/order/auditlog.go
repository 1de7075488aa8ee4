package order

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// AuditLog records placed orders outside the database.
type AuditLog interface {
	Append(o Order) error
}

const auditRule = "====================================="

// FileAuditLog appends one human-readable block per order to a text file.
// Appends from concurrent requests are serialized.
type FileAuditLog struct {
	mu   sync.Mutex
	path string
}

func NewFileAuditLog(path string) *FileAuditLog {
	return &FileAuditLog{path: path}
}

func (l *FileAuditLog) Path() string { return l.path }

func (l *FileAuditLog) Append(o Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	if err := writeEntry(f, o); err != nil {
		f.Close()
		return fmt.Errorf("audit log: %w", err)
	}
	return f.Close()
}

func writeEntry(w io.Writer, o Order) error {
	items := make([]string, len(o.Items))
	for i, it := range o.Items {
		items[i] = fmt.Sprintf("%s x%d", it.ProductName, it.Quantity)
	}

	var b strings.Builder
	b.WriteString("\n" + auditRule + "\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Date: %s\n", o.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Customer: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	fmt.Fprintf(&b, "Address: %s\n", o.Address)
	fmt.Fprintf(&b, "Pincode: %s\n", o.Pincode)
	fmt.Fprintf(&b, "Items: %s\n", strings.Join(items, ", "))
	fmt.Fprintf(&b, "Total: ₹%s\n", strconv.FormatFloat(o.TotalPrice, 'f', -1, 64))
	fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMode)
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	b.WriteString(auditRule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type discardAuditLog struct{}

func (discardAuditLog) Append(Order) error { return nil }
