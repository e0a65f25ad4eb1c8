package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestTimingMetric_Record(t *testing.T) {
	m := newTimingMetric("test")
	m.Record(3 * time.Millisecond)
	m.Record(1 * time.Millisecond)
	m.Record(2 * time.Millisecond)

	st := m.Stats()
	if st.Count != 3 {
		t.Errorf("expected 3 records, got %d", st.Count)
	}
	if st.Min != time.Millisecond || st.Max != 3*time.Millisecond {
		t.Errorf("unexpected min/max %v/%v", st.Min, st.Max)
	}
	if st.Avg != 2*time.Millisecond || st.Total != 6*time.Millisecond {
		t.Errorf("unexpected avg/total %v/%v", st.Avg, st.Total)
	}

	m.Reset()
	if m.Count() != 0 || m.Stats().Max != 0 {
		t.Error("expected reset metric")
	}
}

func TestTimingMetric_Concurrent(t *testing.T) {
	m := newTimingMetric("concurrent")
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.Record(d)
		}(time.Duration(i) * time.Microsecond)
	}
	wg.Wait()

	st := m.Stats()
	if st.Count != 50 || st.Min != time.Microsecond || st.Max != 50*time.Microsecond {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestTimer(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	stop := Timer(ImageDecode)
	time.Sleep(time.Millisecond)
	stop()

	if ImageDecode.Count() != 1 {
		t.Fatalf("expected one record, got %d", ImageDecode.Count())
	}
	stats := AllTimingStats()
	if len(stats) != 1 || stats[0].Name != "image_decode" {
		t.Errorf("expected only image_decode stats, got %+v", stats)
	}

	Timer(nil)()
}

func TestDisabled(t *testing.T) {
	ResetAll()
	SetEnabled(false)
	t.Cleanup(func() {
		SetEnabled(true)
		ResetAll()
	})

	Timer(PageRender)()
	PageBuild.Record(time.Second)
	if PageRender.Count() != 0 || PageBuild.Count() != 0 {
		t.Error("disabled metrics must not record")
	}
}
