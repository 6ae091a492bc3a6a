package service

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(at time.Time) *fixedClock {
	return &fixedClock{now: at}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type notifyCall struct {
	kind   string
	id     uint
	status models.ComplaintStatus
}

// recordingNotifier 记录通知调用，可按顺序注入失败
type recordingNotifier struct {
	calls    []notifyCall
	failures []error
}

func (n *recordingNotifier) record(kind string, c *models.Complaint) error {
	n.calls = append(n.calls, notifyCall{kind: kind, id: c.ID, status: c.Status})
	if len(n.failures) == 0 {
		return nil
	}
	err := n.failures[0]
	n.failures = n.failures[1:]
	return err
}

func (n *recordingNotifier) ComplaintCreated(c *models.Complaint) error {
	return n.record("created", c)
}

func (n *recordingNotifier) ComplaintStatusChanged(c *models.Complaint) error {
	return n.record("status", c)
}

// forbiddenAdminRepo 一旦被访问即判定失败
type forbiddenAdminRepo struct {
	repository.AdminRepository
	t *testing.T
}

func (r forbiddenAdminRepo) GetByEmail(string) (*models.Admin, error) {
	r.t.Fatalf("admin store must not be accessed")
	return nil, nil
}

func (r forbiddenAdminRepo) Create(*models.Admin) error {
	r.t.Fatalf("admin store must not be accessed")
	return nil
}

// countingComplaintRepo 统计仓库访问次数
type countingComplaintRepo struct {
	repository.ComplaintRepository
	getCalls    int
	updateCalls int
}

func (r *countingComplaintRepo) GetByID(id uint) (*models.Complaint, error) {
	r.getCalls++
	return r.ComplaintRepository.GetByID(id)
}

func (r *countingComplaintRepo) UpdateStatus(id uint, status models.ComplaintStatus) (bool, error) {
	r.updateCalls++
	return r.ComplaintRepository.UpdateStatus(id, status)
}

// failingComplaintRepo 模拟存储故障
type failingComplaintRepo struct {
	repository.ComplaintRepository
}

var errStoreDown = errors.New("store down")

func (failingComplaintRepo) Create(*models.Complaint) error {
	return errStoreDown
}

func (failingComplaintRepo) GetByID(uint) (*models.Complaint, error) {
	return nil, errStoreDown
}
