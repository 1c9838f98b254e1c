// Package tabulist реализует список запрещённых ходов (табу-список) для
// поиска с запретами: attribute-based запрет хода по тройке (машина,
// диапазон индексов, снимок последовательности), с динамическим сроком
// действия запрета и ограниченной ёмкостью — по Zhang et al., как в
// исходном алгоритме.
package tabulist

import "math/rand"

// Item — один запрещённый ход: снимок последовательности на машине сразу
// после выполненного хода, вместе с диапазоном индексов, определявших ход.
type Item struct {
	tenure     int
	machine    int
	startIndex int
	endIndex   int
	sequence   []int
}

// List — табу-список ограниченной ёмкости.
type List struct {
	items    []Item
	capacity int
	rng      *rand.Rand

	// константы формулы тенуры, см. Zhang et al.
	tt, d1, d2 int
}

// New создаёт табу-список для задачи с jobs заданиями и machines
// станками. Ёмкость вычисляется по формуле Zhang et al.:
// size ∈ [10+jobs/machines, 1.4 или 1.5 × эта величина], выбор внутри
// диапазона — случайный при создании.
func New(jobs, machines int, rng *rand.Rand) *List {
	min := 10.0 + float64(jobs)/float64(machines)
	var max float64
	if machines*2 > jobs {
		max = 1.4 * min
	} else {
		max = 1.5 * min
	}
	capacity := int(ceil(rng.Float64()*(max-min) + min))
	if capacity < 1 {
		capacity = 1
	}
	return &List{
		capacity: capacity,
		rng:      rng,
		tt:       2,
		d1:       5,
		d2:       12,
	}
}

func ceil(x float64) int {
	i := int(x)
	if float64(i) < x {
		i++
	}
	return i
}

// Reset очищает список, сохраняя ёмкость.
func (l *List) Reset() {
	l.items = l.items[:0]
}

// IsTabu проверяет, запрещена ли машина seq в диапазоне [startIndex,
// endIndex] — ход запрещён, если в списке есть запись с тем же
// станком, чей снимок последовательности совпадает с seq на всём
// диапазоне.
func (l *List) IsTabu(machine, startIndex, endIndex int, seq []int) bool {
	for _, it := range l.items {
		if it.machine != machine {
			continue
		}
		match := true
		for i := startIndex; i <= endIndex; i++ {
			if seq[i] != it.sequence[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Insert декрементирует тенуру всех записей, удаляет истёкшие, и при
// необходимости освобождает место перед вставкой новой записи —
// выбирая ход с минимальной оставшейся тенурой как жертву вытеснения.
// candidateMakespan и bestMakespan определяют случайный срок действия
// нового запрета: tt + U[0, max((candidateMakespan-bestMakespan)/d1, d2)].
func (l *List) Insert(machine, startIndex, endIndex int, seq []int, candidateMakespan, bestMakespan int) {
	kept := l.items[:0]
	smallest := -1
	for i := range l.items {
		l.items[i].tenure--
		if l.items[i].tenure <= 0 {
			continue
		}
		kept = append(kept, l.items[i])
		if smallest == -1 || kept[len(kept)-1].tenure < kept[smallest].tenure {
			smallest = len(kept) - 1
		}
	}
	l.items = kept

	if len(l.items) >= l.capacity && smallest != -1 {
		l.items = append(l.items[:smallest], l.items[smallest+1:]...)
	}

	tenureMax := (candidateMakespan - bestMakespan) / l.d1
	if tenureMax < l.d2 {
		tenureMax = l.d2
	}
	tenure := l.tt
	if tenureMax > 0 {
		tenure += l.rng.Intn(tenureMax + 1)
	}

	snapshot := make([]int, len(seq))
	copy(snapshot, seq)
	l.items = append(l.items, Item{
		tenure:     tenure,
		machine:    machine,
		startIndex: startIndex,
		endIndex:   endIndex,
		sequence:   snapshot,
	})
}

// Len returns the current number of active entries.
func (l *List) Len() int {
	return len(l.items)
}

// SetTenureParams overrides the tt/d1/d2 constants of the tenure
// formula. Zero values leave the corresponding constant unchanged.
func (l *List) SetTenureParams(tt, d1, d2 int) {
	if tt != 0 {
		l.tt = tt
	}
	if d1 != 0 {
		l.d1 = d1
	}
	if d2 != 0 {
		l.d2 = d2
	}
}

// SetCapacity overrides the list's capacity. n <= 0 is a no-op.
func (l *List) SetCapacity(n int) {
	if n > 0 {
		l.capacity = n
	}
}
