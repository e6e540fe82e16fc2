package mock

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// createdAtLayout matches what the production service emits: local time, no zone
const createdAtLayout = "2006-01-02T15:04:05.000000"

var (
	firstNames = []string{"John", "Jane", "Mike", "Sarah", "David", "Emma", "Chris", "Lisa"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	products   = []string{"Laptop", "Phone", "Tablet", "Monitor", "Keyboard", "Mouse", "Headphones", "Camera"}
	cities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego"}
	domains    = []string{"gmail.com", "yahoo.com", "outlook.com", "company.com"}
)

// Generator produces random records per entity type. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator; seed 0 seeds from the clock
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Record builds one record of the given type. Unknown types yield a record
// whose data carries only an explanatory message.
func (g *Generator) Record(entityType string) types.TestRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	return types.TestRecord{
		ID:        uuid.NewString(),
		Type:      entityType,
		Data:      g.data(entityType),
		CreatedAt: g.now().Format(createdAtLayout),
	}
}

// Records builds count records of the given type
func (g *Generator) Records(entityType string, count int) []types.TestRecord {
	records := make([]types.TestRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.Record(entityType))
	}
	return records
}

func (g *Generator) data(entityType string) map[string]any {
	switch strings.ToLower(entityType) {
	case "user":
		return map[string]any{
			"firstName": g.pick(firstNames),
			"lastName":  g.pick(lastNames),
			"email":     g.email(),
			"age":       g.rng.Intn(60) + 18,
			"city":      g.pick(cities),
		}
	case "product":
		return map[string]any{
			"name":     g.pick(products),
			"price":    g.money(1000, 50),
			"category": "Electronics",
			"inStock":  g.rng.Intn(2) == 1,
			"sku":      fmt.Sprintf("SKU-%d", g.rng.Intn(10000)),
		}
	case "order":
		status := "PENDING"
		if g.rng.Intn(2) == 1 {
			status = "COMPLETED"
		}
		return map[string]any{
			"orderId":    fmt.Sprintf("ORD-%d", g.rng.Intn(100000)),
			"customerId": fmt.Sprintf("CUST-%d", g.rng.Intn(10000)),
			"total":      g.money(500, 10),
			"status":     status,
			"items":      g.rng.Intn(5) + 1,
		}
	case "address":
		return map[string]any{
			"street":  fmt.Sprintf("%d %s St", g.rng.Intn(9999)+1, g.pick(lastNames)),
			"city":    g.pick(cities),
			"zipCode": fmt.Sprintf("%05d", g.rng.Intn(100000)),
			"country": "USA",
		}
	case "payment":
		cardType := "MASTERCARD"
		if g.rng.Intn(2) == 1 {
			cardType = "VISA"
		}
		return map[string]any{
			"cardNumber": fmt.Sprintf("**** **** **** %04d", g.rng.Intn(10000)),
			"cardType":   cardType,
			"amount":     g.money(1000, 10),
			"currency":   "USD",
		}
	default:
		return map[string]any{"message": "Unknown type: " + entityType}
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) email() string {
	first := strings.ToLower(g.pick(firstNames))
	last := strings.ToLower(g.pick(lastNames))
	return first + "." + last + "@" + g.pick(domains)
}

// money returns a value in [floor, floor+spread) rounded to cents
func (g *Generator) money(spread, floor float64) float64 {
	return math.Round((g.rng.Float64()*spread+floor)*100) / 100
}
