package telegram

// Canned replies, kept in Indonesian because that is what the team speaks.
// Strings with %s take the admin contact.

const startReply = `👋 Halo! Saya bot task management.

Silakan ketik task Anda dengan format berikut:
📌 Project Name | Task | Assignor

Contoh:
Fusion | Adjust Network Cognitive Warfare | Fakhri

Task Anda akan otomatis saya simpan ke spreadsheet. 🚀`

const infoReply = `ℹ️ Info Bot Task Management

Cara menggunakan bot ini:
1. Ketikkan task dalam format berikut:

   Project Name | Task | Assignor

   Contoh:
   Fusion | Adjust Network Cognitive Warfare | Fakhri

2. Bot akan menyimpan task tersebut ke spreadsheet.

Daftar command:
- /start → Memulai percakapan dengan bot
- /info → Melihat informasi & panduan penggunaan
- /chat → Chat langsung dengan bot
- /check_task → Mengecek apakah masih ada task yang belum selesai

Bot ini terhubung dengan Google Spreadsheet untuk menyimpan semua task.
Apabila ada kendala hubungi admin: %s`

const emptyChatReply = "❌ Tolong masukkan pesan setelah /chat."

const reportErrorReply = "Maaf Saat ini saya sedang terkendala sesuatu, mohon coba sesaat lagi. apabila ini terus berlangsung tolong hubungi %s"

const chatErrorReply = "Maaf, saya sedang mengalami kendala. Coba lagi nanti atau hubungi admin: %s"

const checkErrorReply = "❌ Maaf, terjadi kesalahan saat mengambil data task.\nSilakan coba lagi nanti atau hubungi admin: %s"
