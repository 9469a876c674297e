package classify

import (
	"testing"

	"FinNewsScanner/internal/domain"
)

func TestSectorsSingleMatch(t *testing.T) {
	t.Parallel()

	sectors := Sectors("Ngân hàng đẩy mạnh tín dụng cuối năm")
	if len(sectors) != 1 || sectors[0] != domain.SectorBanking {
		t.Fatalf("expected [Banking], got %v", sectors)
	}
}

func TestSectorsNoMatchReturnsOther(t *testing.T) {
	t.Parallel()

	sectors := Sectors("Hôm nay trời nhiều mây")
	if len(sectors) != 1 || sectors[0] != domain.SectorOther {
		t.Fatalf("expected [Other], got %v", sectors)
	}
}

func TestSectorsSecondaryTag(t *testing.T) {
	t.Parallel()

	// Banking and Finance both score 4; the tie keeps catalog order and the
	// runner-up clears the 70% bar.
	text := "ngân hàng cấp tín dụng cho công ty chứng khoán phát hành cổ phiếu"
	sectors := Sectors(text)
	if len(sectors) != 2 {
		t.Fatalf("expected two tags, got %v", sectors)
	}
	if sectors[0] != domain.SectorBanking || sectors[1] != domain.SectorFinance {
		t.Fatalf("expected [Banking Finance], got %v", sectors)
	}
}

func TestSectorsSecondaryBelowThreshold(t *testing.T) {
	t.Parallel()

	// Banking scores 4, Finance only 2 via "đầu tư"; 2 < 0.7*4 drops it.
	sectors := Sectors("ngân hàng mở rộng tín dụng, thu hút đầu tư")
	if len(sectors) != 1 || sectors[0] != domain.SectorBanking {
		t.Fatalf("expected [Banking] only, got %v", sectors)
	}
}

func TestSectorsAtMostTwoTags(t *testing.T) {
	t.Parallel()

	text := "ngân hàng tín dụng chứng khoán cổ phiếu bất động sản căn hộ"
	sectors := Sectors(text)
	if len(sectors) > 2 {
		t.Fatalf("expected at most two tags, got %v", sectors)
	}
	seen := map[domain.Sector]struct{}{}
	for _, s := range sectors {
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate tag in %v", sectors)
		}
		seen[s] = struct{}{}
	}
}

func TestSectorsPresenceNotFrequency(t *testing.T) {
	t.Parallel()

	// "ngân hàng" repeated still scores once (2); Finance scores 4 and wins
	// alone.
	sectors := Sectors("ngân hàng ngân hàng ngân hàng chứng khoán cổ phiếu")
	if len(sectors) != 1 || sectors[0] != domain.SectorFinance {
		t.Fatalf("expected [Finance], got %v", sectors)
	}
}
