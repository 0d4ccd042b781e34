package bptree

import (
	"math/rand"
	"testing"
)

func BenchmarkInsert(b *testing.B) {
	tr, _ := New(Options{})
	defer tr.Free()

	r := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Insert(r.Uint64(), uint64(i))
	}
}

func BenchmarkInsertSequential(b *testing.B) {
	tr, _ := New(Options{})
	defer tr.Free()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Insert(uint64(i), uint64(i))
	}
}

func BenchmarkFind(b *testing.B) {
	tr, _ := New(Options{})
	defer tr.Free()

	const n = 100000
	for i := 0; i < n; i++ {
		tr.Insert(uint64(i), uint64(i))
	}
	r := rand.New(rand.NewSource(2))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Find(uint64(r.Intn(n)))
	}
}

func BenchmarkDelete(b *testing.B) {
	tr, _ := New(Options{})
	defer tr.Free()

	for i := 0; i < b.N; i++ {
		tr.Insert(uint64(i), uint64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Delete(uint64(i))
	}
}

func BenchmarkEnumerate(b *testing.B) {
	tr, _ := New(Options{})
	defer tr.Free()

	const n = 100000
	for i := 0; i < n; i++ {
		tr.Insert(uint64(i), uint64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum uint64
		tr.Enumerate(func(key, value uint64) bool {
			sum += value
			return true
		})
	}
}

func BenchmarkCursorScan(b *testing.B) {
	tr, _ := New(Options{})
	defer tr.Free()

	const n = 100000
	for i := 0; i < n; i++ {
		tr.Insert(uint64(i), uint64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cur, err := tr.FirstRecord()
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, _, err := cur.Get(); err != nil {
				break
			}
			if err := cur.Next(); err != nil {
				break
			}
		}
		cur.Free()
	}
}
