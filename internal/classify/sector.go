package classify

import (
	"sort"
	"strings"

	"FinNewsScanner/internal/domain"
)

// sectorEntry binds one catalog tag to its keyword phrases. The slice order
// below is the fixed declaration order used for tie breaks; do not reorder.
type sectorEntry struct {
	Tag      domain.Sector
	Keywords []string
}

// sectorCatalog is the single consolidated keyword table for the nine scored
// sectors; Other is the keywordless default.
var sectorCatalog = []sectorEntry{
	{domain.SectorBanking, []string{"ngân hàng", "bank", "tín dụng", "cho vay", "huy động"}},
	{domain.SectorRealEstate, []string{"bất động sản", "nhà đất", "căn hộ", "dự án", "khu đô thị"}},
	{domain.SectorFinance, []string{"chứng khoán", "cổ phiếu", "trái phiếu", "đầu tư", "niêm yết"}},
	{domain.SectorRetail, []string{"bán lẻ", "siêu thị", "thương mại", "cửa hàng", "mua sắm"}},
	{domain.SectorTechnology, []string{"công nghệ", "phần mềm", "công nghệ thông tin", "it", "digital"}},
	{domain.SectorManufacturing, []string{"sản xuất", "nhà máy", "công nghiệp", "chế biến", "gia công"}},
	{domain.SectorEnergy, []string{"điện", "năng lượng", "dầu khí", "xăng dầu", "petro"}},
	{domain.SectorTransportation, []string{"hàng không", "vận tải", "logistics", "cảng", "giao nhận"}},
	{domain.SectorAgriculture, []string{"nông nghiệp", "thủy sản", "cao su", "gạo", "cà phê"}},
}

// secondaryThreshold admits a second tag when its score reaches 70% of the
// primary's.
const secondaryThreshold = 0.7

// Sectors classifies the text into one or two tags from the fixed catalog.
// A phrase counts once regardless of repetition and scores its word count,
// so multi-word phrases outweigh single words. Ties keep catalog order.
// Texts matching nothing get [Other].
func Sectors(text string) []domain.Sector {
	t := strings.ToLower(text)

	type scored struct {
		tag   domain.Sector
		score int
	}
	var ranked []scored
	for _, entry := range sectorCatalog {
		score := 0
		for _, phrase := range entry.Keywords {
			if strings.Contains(t, phrase) {
				score += len(strings.Fields(phrase))
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{tag: entry.Tag, score: score})
		}
	}

	if len(ranked) == 0 {
		return []domain.Sector{domain.SectorOther}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := []domain.Sector{ranked[0].tag}
	if len(ranked) > 1 && float64(ranked[1].score) >= secondaryThreshold*float64(ranked[0].score) {
		out = append(out, ranked[1].tag)
	}
	return out
}
