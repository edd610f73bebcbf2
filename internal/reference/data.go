package reference

var defaultSectors = []Sector{
	{ID: "dis-klinigi", Name: "Diş Klinikleri", Keywords: []string{"diş kliniği", "diş hekimi", "diş doktoru"}, Potential: "Çok yüksek"},
	{ID: "sac-ekimi", Name: "Saç Ekimi Klinikleri", Keywords: []string{"saç ekim merkezi", "saç ekimi kliniği"}, Potential: "Çok yüksek"},
	{ID: "avukat", Name: "Avukatlık Büroları", Keywords: []string{"avukat", "avukatlık bürosu", "hukuk bürosu"}, Potential: "Yüksek"},
	{ID: "emlak", Name: "Emlak Ofisleri", Keywords: []string{"emlak ofisi", "emlakçı", "gayrimenkul"}, Potential: "Orta"},
	{ID: "oto-servis", Name: "Oto Servis", Keywords: []string{"oto servis", "oto tamirhanesi", "araba servisi"}, Potential: "Yüksek"},
	{ID: "oto-lastik", Name: "Oto Lastik", Keywords: []string{"oto lastik", "lastikçi", "yol yardım"}, Potential: "Çok yüksek"},
	{ID: "veteriner", Name: "Veteriner", Keywords: []string{"veteriner", "veteriner kliniği"}, Potential: "Yüksek"},
	{ID: "petshop", Name: "Petshop", Keywords: []string{"petshop", "pet shop", "hayvan hastanesi"}, Potential: "Orta"},
	{ID: "surucu-kursu", Name: "Sürücü Kursları", Keywords: []string{"sürücü kursu", "ehliyet kursu"}, Potential: "Orta"},
	{ID: "restoran", Name: "Restoranlar", Keywords: []string{"restoran", "lokanta"}, Potential: "Orta"},
	{ID: "tesisatci", Name: "Tesisatçı", Keywords: []string{"tesisatçı", "su tesisatçısı", "su kaçağı"}, Potential: "Çok yüksek"},
	{ID: "elektrikci", Name: "Elektrikçi", Keywords: []string{"elektrikçi", "elektrik tamircisi", "acil elektrikçi"}, Potential: "Çok yüksek"},
	{ID: "klima-servisi", Name: "Klima Servisi", Keywords: []string{"klima servisi", "klima tamiri"}, Potential: "Yüksek"},
	{ID: "nakliyat", Name: "Nakliyat", Keywords: []string{"nakliyat", "evden eve nakliyat"}, Potential: "Yüksek"},
	{ID: "hali-yikama", Name: "Halı Yıkama", Keywords: []string{"halı yıkama", "koltuk yıkama"}, Potential: "Orta"},
	{ID: "temizlik", Name: "Temizlik Şirketi", Keywords: []string{"temizlik şirketi", "temizlik firması"}, Potential: "Yüksek"},
	{ID: "cam-balkon", Name: "Cam Balkon", Keywords: []string{"cam balkon", "balkon kapatma"}, Potential: "Yüksek"},
	{ID: "insaat-tadilat", Name: "Tadilat", Keywords: []string{"tadilat", "tadilat firması", "boya badana"}, Potential: "Çok yüksek"},
	{ID: "perdeci", Name: "Perdeci", Keywords: []string{"perdeci", "perde mağazası"}, Potential: "Orta"},
}

var defaultNeighborhoods = map[string][]string{
	"Küçükçekmece": {
		"Atakent", "Atatürk", "Beşyol", "Cennet", "Cumhuriyet", "Fatih",
		"Fevzi Çakmak", "Gültepe", "Halkalı", "İnönü", "İstasyon", "Kanarya",
		"Kartaltepe", "Kemalpaşa", "Mehmet Akif", "Söğütlüçeşme", "Sultan Murat",
		"Tevfikbey", "Yarımburgaz", "Yeni Mahalle", "Yeşilova", "Sefaköy",
	},
	"Beyoğlu": {
		"Cihangir", "Galata", "Karaköy", "Taksim", "Kasımpaşa", "Tophane",
		"Şişhane", "Dolapdere",
	},
	"Kadıköy": {
		"Moda", "Caferağa", "Fenerbahçe", "Göztepe", "Koşuyolu", "Suadiye",
		"Bostancı", "Erenköy",
	},
	"Şişli": {
		"Mecidiyeköy", "Nişantaşı", "Fulya", "Esentepe", "Bomonti", "Kurtuluş",
	},
	"Beşiktaş": {
		"Levent", "Etiler", "Ortaköy", "Bebek", "Arnavutköy", "Gayrettepe",
	},
	"Bakırköy": {
		"Ataköy", "Yeşilköy", "Florya", "Osmaniye", "Kartaltepe", "Zeytinlik",
	},
	"Fatih": {
		"Aksaray", "Balat", "Çarşamba", "Eminönü", "Fener", "Kocamustafapaşa",
	},
	"Üsküdar": {
		"Kuzguncuk", "Çengelköy", "Beylerbeyi", "Acıbadem", "Altunizade", "Salacak",
	},
}
