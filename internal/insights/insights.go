// Package insights holds the display copy for each positioning quadrant,
// in every language the API serves. The classifier only emits labels and
// coordinates; everything human-readable lives here.
package insights

import "ratewatch/internal/sentiment"

const (
	LangEnglish = "en"
	LangTurkish = "tr"
)

// Insight is the renderable text for one quadrant in one language.
type Insight struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Action  string `json:"action"`
}

// Languages lists every language the table carries, English first.
func Languages() []string {
	return []string{LangEnglish, LangTurkish}
}

// Lookup returns the copy for a label. Unknown languages fall back to
// English; an unknown label reads as Insufficient Data so the caller always
// has something safe to render.
func Lookup(label sentiment.QuadrantLabel, lang string) Insight {
	byLang, ok := table[label]
	if !ok {
		byLang = table[sentiment.QuadrantInsufficientData]
	}
	if ins, ok := byLang[lang]; ok {
		return ins
	}
	return byLang[LangEnglish]
}

var table = map[sentiment.QuadrantLabel]map[string]Insight{
	sentiment.QuadrantStandard: {
		LangEnglish: {
			Title:   "In Line With the Market",
			Summary: "Your rate and guest sentiment both sit close to the market average. Guests see you as a fair, unremarkable choice.",
			Action:  "Differentiate on one pillar before moving price; small rate changes here rarely shift demand.",
		},
		LangTurkish: {
			Title:   "Pazarla Uyumlu",
			Summary: "Fiyatınız ve misafir algınız pazar ortalamasına yakın seyrediyor. Misafirler sizi makul ama sıradan bir seçenek olarak görüyor.",
			Action:  "Fiyat değiştirmeden önce bir kategoride fark yaratın; bu konumda küçük fiyat oynamaları talebi nadiren etkiler.",
		},
	},
	sentiment.QuadrantValueLeader: {
		LangEnglish: {
			Title:   "Value Leader",
			Summary: "You charge less than the market while guests rate you at or above it. There is likely room to raise rates without losing share.",
			Action:  "Test stepped rate increases on high-demand dates and watch pickup before committing across the calendar.",
		},
		LangTurkish: {
			Title:   "Fiyat/Performans Lideri",
			Summary: "Pazardan daha düşük fiyat alıyorsunuz ama misafir puanlarınız pazarın üzerinde. Pay kaybetmeden fiyat artırma alanınız var.",
			Action:  "Yoğun tarihlerde kademeli fiyat artışları deneyin ve takvime yaymadan önce rezervasyon hızını izleyin.",
		},
	},
	sentiment.QuadrantPremiumKing: {
		LangEnglish: {
			Title:   "Premium King",
			Summary: "You price above the market and guest sentiment backs it up. Your reputation is carrying the premium.",
			Action:  "Protect the pillars guests praise most; a slip in sentiment here converts directly into lost rate power.",
		},
		LangTurkish: {
			Title:   "Premium Lider",
			Summary: "Pazarın üzerinde fiyatlandırıyorsunuz ve misafir algısı bunu destekliyor. İtibarınız bu primi taşıyor.",
			Action:  "Misafirlerin en çok övdüğü alanları koruyun; burada algıdaki bir düşüş doğrudan fiyat gücü kaybına dönüşür.",
		},
	},
	sentiment.QuadrantBudgetEconomy: {
		LangEnglish: {
			Title:   "Budget / Economy",
			Summary: "You are cheaper than the market and guests rate you below it. You compete on price, not experience.",
			Action:  "Fix the lowest-rated pillar before touching rates; raising price from this position usually stalls occupancy.",
		},
		LangTurkish: {
			Title:   "Ekonomik Segment",
			Summary: "Pazardan ucuzsunuz ve misafir puanlarınız pazarın altında. Deneyimle değil fiyatla rekabet ediyorsunuz.",
			Action:  "Fiyata dokunmadan önce en düşük puanlı kategoriyi düzeltin; bu konumdan fiyat artışı genelde doluluğu durdurur.",
		},
	},
	sentiment.QuadrantDangerZone: {
		LangEnglish: {
			Title:   "Danger Zone",
			Summary: "You charge more than the market while guests rate you below it. Guests are paying a premium they do not feel.",
			Action:  "Either close the sentiment gap fast or reprice toward the market; this position bleeds repeat business.",
		},
		LangTurkish: {
			Title:   "Tehlike Bölgesi",
			Summary: "Pazardan pahalısınız ama misafir puanlarınız pazarın altında. Misafirler hissetmedikleri bir prim ödüyor.",
			Action:  "Ya algı farkını hızla kapatın ya da fiyatı pazara yaklaştırın; bu konum tekrar eden misafiri eritir.",
		},
	},
	sentiment.QuadrantInsufficientData: {
		LangEnglish: {
			Title:   "Insufficient Data",
			Summary: "There is not enough price or sentiment data to place this property on the map yet.",
			Action:  "Run a full scan of the property and its competitive set, then revisit the analysis.",
		},
		LangTurkish: {
			Title:   "Yetersiz Veri",
			Summary: "Bu tesisi haritaya yerleştirmek için henüz yeterli fiyat veya misafir algısı verisi yok.",
			Action:  "Tesisi ve rakip setini tam tarayın, ardından analize yeniden bakın.",
		},
	},
}
