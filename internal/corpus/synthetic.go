package corpus

import (
	"fmt"
	"math/rand"

	"docparse/constants"
	"docparse/internal/classifier"
)

// syntheticSeed keeps generated corpora reproducible across runs.
const syntheticSeed = 42

var (
	firstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Laura", "Robert", "Emily"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	cities     = []string{"New York", "Chicago", "Houston", "Phoenix", "Seattle", "Denver", "Boston", "Austin"}
	stores     = []string{"Walmart", "Target", "Costco", "Kroger", "Walgreens", "Safeway"}
	products   = []string{"Office Chair", "Laptop Stand", "USB Cable", "Desk Lamp", "Notebook", "Monitor"}
	companies  = []string{"Acme Corp", "Globex Inc", "Initech LLC", "Umbrella Co", "Stark Industries"}
)

// Synthetic generates count labeled samples per built-in document type for
// bootstrap training when no real corpus exists yet.
func Synthetic(count int) []classifier.TrainingSample {
	if count <= 0 {
		count = 10
	}
	rng := rand.New(rand.NewSource(syntheticSeed))

	samples := make([]classifier.TrainingSample, 0, count*4)
	for i := 0; i < count; i++ {
		samples = append(samples,
			sample(constants.Invoice, syntheticInvoice(rng, i)),
			sample(constants.Receipt, syntheticReceipt(rng, i)),
			sample(constants.Contract, syntheticContract(rng, i)),
			sample(constants.Contact, syntheticContact(rng, i)),
		)
	}
	return samples
}

func sample(dt constants.DocumentType, text string) classifier.TrainingSample {
	return classifier.TrainingSample{Text: text, DocumentType: dt, SourceFile: "synthetic"}
}

func syntheticInvoice(rng *rand.Rand, i int) string {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	amount := 50.0 + rng.Float64()*1950
	return fmt.Sprintf(
		"INVOICE\n\nInvoice #INV-%04d\nInvoice Date: %02d/%02d/2024\n\nBill To:\n%s %s\nCity: %s\n\n%s\nQuantity: %d\nTotal: $%.2f\nDue Date: %02d/28/2024\nPayment Terms: Net 30",
		1000+i, 1+rng.Intn(12), 1+rng.Intn(28),
		first, last, pick(rng, cities),
		pick(rng, products), 1+rng.Intn(10), amount,
		1+rng.Intn(12),
	)
}

func syntheticReceipt(rng *rand.Rand, i int) string {
	subtotal := 5.0 + rng.Float64()*195
	tax := subtotal * 0.08
	return fmt.Sprintf(
		"%s\nStore #%03d\n\nReceipt\nDate: %02d/%02d/2024\n\n%s  $%.2f\nSubtotal: $%.2f\nTax: $%.2f\nTotal: $%.2f\n\nPayment Method: %s\nThank you for shopping with us",
		pick(rng, stores), 1+rng.Intn(999),
		1+rng.Intn(12), 1+rng.Intn(28),
		pick(rng, products), subtotal, subtotal, tax, subtotal+tax,
		pick(rng, []string{"Cash", "Credit Card", "Debit Card"}),
	)
}

func syntheticContract(rng *rand.Rand, i int) string {
	return fmt.Sprintf(
		"CONTRACT AGREEMENT\n\nContract #C-%04d\n\nThis agreement is entered into between %s (the Client) and %s (the Vendor), effective %02d/%02d/2024.\n\nContract Value: $%.2f\nTerm: %d months\nGoverning Law: State of Delaware\n\nBoth parties agree to the terms and conditions set forth herein.",
		2000+i, pick(rng, companies), pick(rng, companies),
		1+rng.Intn(12), 1+rng.Intn(28),
		10000+rng.Float64()*490000, 6+rng.Intn(30),
	)
}

func syntheticContact(rng *rand.Rand, i int) string {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	return fmt.Sprintf(
		"CONTACT INFORMATION\n\nFirst Name: %s\nLast Name: %s\nEmail: %s.%s@example.com\nPhone: (555) %03d-%04d\nCity: %s\nCompany: %s",
		first, last, first, last,
		100+rng.Intn(900), rng.Intn(10000),
		pick(rng, cities), pick(rng, companies),
	)
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
