package main

import (
	"flag"

	"uyetakip.app/configs/configsdatabase"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/database"
)

// Üye takip şemasını kuran ve kurucu üyeleri yükleyen yardımcı binary.
// Uygulama sunucusundan ayrı çalıştırılır:
//
//	go run ./database/cmd -migrate -seed
func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Üye takip şemasını oluştur/güncelle (üyelik, toplantı ve yardım etkinliği tabloları)")
	seedFlag := flag.Bool("seed", false, "Kurucu üyeleri yükle (terfilerin sponsor bulabilmesi için gerekli)")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	configslog.SLog.Info("Üye takip veritabanı hazırlanıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)

	configslog.SLog.Info("Üye takip veritabanı hazırlığı tamamlandı.")
}
