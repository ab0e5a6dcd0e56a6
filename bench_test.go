package xmladapters

import (
	"testing"
	"time"

	"github.com/Station-Manager/xmladapters/converters/common"
	"github.com/aarondl/null/v8"
)

type benchRecord struct {
	ID          int       `json:"id"`
	Call        string    `json:"call"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Active      bool      `json:"active"`
	Score       float64   `json:"score"`
	QsoDate     time.Time `json:"qso_date"`
	Description string    `json:"description"`
}

type benchRecordWithAdditional struct {
	ID             int    `json:"id"`
	Call           string `json:"call"`
	AdditionalData null.JSON
}

var benchDoc = []byte(`{"id":1,"call":"M0CMC","name":"John Doe","email":"john@example.com","address":"123 Main St","city":"London","active":true,"score":95.5,"qso_date":"2025-11-07","description":"A test record"}`)

var benchDocExtra = []byte(`{"id":1,"call":"M0CMC","grid":"IO91","power":100,"rig":"IC-7300","antenna":"dipole"}`)

func benchMapper(b *testing.B) *Mapper {
	b.Helper()
	m := New()
	if err := Register[string, time.Time](m, common.DateAdapter{}); err != nil {
		b.Fatal(err)
	}
	m.WarmMetadata(benchRecord{}, benchRecordWithAdditional{})
	return m
}

func BenchmarkReadValue(b *testing.B) {
	m := benchMapper(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var r benchRecord
		if err := m.ReadValue(benchDoc, &r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadValue_AdditionalData(b *testing.B) {
	m := benchMapper(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var r benchRecordWithAdditional
		if err := m.ReadValue(benchDocExtra, &r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteValue(b *testing.B) {
	m := benchMapper(b)
	var r benchRecord
	if err := m.ReadValue(benchDoc, &r); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.WriteValue(r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvert(b *testing.B) {
	m := benchMapper(b)
	src := jsonQso{Call: "M0CMC", QsoDate: "20251107", Band: "20m"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Convert[xmlQso](m, src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdapterBinder_Bind(b *testing.B) {
	ab := NewAdapterBinder[string, time.Time](common.DateAdapter{})
	ctx := New().newContext()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ab.Bind(decoderFor(`"2025-11-07"`), ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadValue_Parallel(b *testing.B) {
	m := benchMapper(b)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			var r benchRecord
			if err := m.ReadValue(benchDoc, &r); err != nil {
				b.Fatal(err)
			}
		}
	})
}
