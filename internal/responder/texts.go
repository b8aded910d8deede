package responder

// The answer blocks below are the demo script of the assistant: fixed,
// multi-section Vietnamese text returned without any model inference.

const creditRiskText = `Chào bạn! 🏦 Về rủi ro tín dụng, đây là một chủ đề quan trọng trong ngành ngân hàng. Tôi sẽ chia sẻ thông tin chi tiết:

**🔍 Các loại rủi ro tín dụng chính:**

**1. Rủi ro không trả được nợ (Default Risk):**
• Khách hàng không có khả năng trả nợ gốc và lãi đúng hạn
• Nguyên nhân: Mất thu nhập, phá sản, tình hình kinh tế xấu
• Biện pháp: Thẩm định kỹ hồ sơ, đòi hỏi tài sản đảm bảo

**2. Rủi ro thanh khoản:**
• Ngân hàng thiếu tiền mặt để đáp ứng nhu cầu rút tiền
• Xảy ra khi nhiều khoản vay có vấn đề cùng lúc
• Quản lý: Duy trì tỷ lệ thanh khoản an toàn

**3. Rủi ro lãi suất:**
• Biến động lãi suất thị trường ảnh hưởng đến lợi nhuận
• Tác động: Chênh lệch thu - chi thay đổi
• Phòng ngừa: Sử dụng công cụ phái sinh tài chính

**📊 Phương pháp đánh giá rủi ro:**
• Credit scoring - chấm điểm tín dụng
• Phân tích tài chính khách hàng
• Thẩm định tài sản đảm bảo
• Kiểm tra lịch sử tín dụng CIC

Bạn muốn tìm hiểu sâu hơn về khía cạnh nào của rủi ro tín dụng? 🤔`

const generalRiskText = `Chào bạn! ⚠️ Rủi ro là một khái niệm quan trọng trong mọi hoạt động. Tôi sẽ chia sẻ về các loại rủi ro phổ biến:

**💼 Rủi ro trong đầu tư:**
• Rủi ro thị trường: Giá cả biến động
• Rủi ro lạm phát: Sức mua giảm
• Rủi ro thanh khoản: Khó bán tài sản

**🏢 Rủi ro trong kinh doanh:**
• Rủi ro vận hành: Sự cố trong hoạt động
• Rủi ro tài chính: Thiếu vốn, nợ xấu
• Rủi ro pháp lý: Thay đổi quy định

**🔐 Cách quản lý rủi ro:**
• Đa dạng hóa danh mục đầu tư
• Mua bảo hiểm phù hợp
• Xây dựng quỹ dự phòng
• Theo dõi và đánh giá thường xuyên

Tại TV Bank, chúng tôi cung cấp các sản phẩm bảo hiểm và tư vấn quản lý rủi ro tài chính. Bạn có muốn tìm hiểu thêm không? 📞`

const managerRiskText = `Chào anh/chị! 📊 Dưới góc độ quản lý chi nhánh, đây là các chỉ số rủi ro cần theo dõi sát:

**🎯 Chỉ số danh mục tín dụng:**
• Tỷ lệ nợ xấu (NPL) của chi nhánh so với ngưỡng 3%
• Tỷ lệ nợ nhóm 2 - tín hiệu cảnh báo sớm
• Mức độ tập trung dư nợ theo ngành và theo khách hàng lớn

**📋 Kiểm soát quy trình:**
• Tuân thủ hạn mức phê duyệt theo phân cấp
• Chất lượng thẩm định của chuyên viên tín dụng
• Định giá lại tài sản đảm bảo định kỳ

**🔁 Hành động khuyến nghị:**
• Họp rà soát danh mục hàng tuần với bộ phận tín dụng
• Báo cáo kịp thời các khoản vay có dấu hiệu suy giảm
• Phối hợp bộ phận xử lý nợ khi phát sinh quá hạn

Anh/chị cần xem chi tiết nhóm chỉ số nào của chi nhánh? 📈`

const officerAdviceText = `Chào bạn! 👋 Tôi là TV Bank AI Assistant. Khi tư vấn khách hàng, bạn nên lưu ý:

**🎯 Nguyên tắc tư vấn chuyên nghiệp:**

**1. Lắng nghe và hiểu nhu cầu:**
• Để khách hàng trình bày đầy đủ tình hình tài chính
• Đặt câu hỏi mở để hiểu rõ mục đích vay vốn
• Ghi nhận thông tin về thu nhập, chi phí, tài sản hiện có

**2. Phân tích khả năng tài chính:**
• Tính toán tỷ lệ DSTI (không vượt 60%)
• Đánh giá nguồn thu nhập ổn định
• Xem xét tài sản đảm bảo (nếu có)

**3. Tư vấn sản phẩm phù hợp:**
• Giải thích rõ các gói vay: lãi suất, thời hạn, điều kiện
• So sánh ưu nhược điểm của từng sản phẩm
• Đề xuất phương án thanh toán hợp lý

**4. Quy trình và giấy tờ:**
• Hướng dẫn chuẩn bị hồ sơ đầy đủ
• Giải thích các bước thẩm định
• Cam kết thời gian xử lý

**5. Rủi ro và lưu ý:**
• Cảnh báo về rủi ro khi không trả được nợ
• Tư vấn kế hoạch tài chính dài hạn
• Đảm bảo khách hàng hiểu rõ nghĩa vụ

Bạn có cần tôi tư vấn thêm về khía cạnh nào khác không? 😊`

const adviceText = `Chào bạn! 💡 Tôi rất vui được tư vấn cho bạn! Hãy cho tôi biết bạn cần tư vấn về vấn đề gì:

**🏦 Tư vấn tài chính ngân hàng:**
• Lựa chọn sản phẩm vay phù hợp
• Kế hoạch tiết kiệm và đầu tư
• Quản lý dòng tiền cá nhân/doanh nghiệp
• Tối ưu hóa chi phí tài chính

**💼 Tư vấn kinh doanh:**
• Lập kế hoạch kinh doanh
• Quản lý rủi ro trong kinh doanh
• Tìm kiếm nguồn vốn phù hợp
• Phát triển mô hình kinh doanh

**📈 Tư vấn đầu tư:**
• Phân tích cơ hội đầu tư
• Đa dạng hóa danh mục
• Đánh giá rủi ro - lợi nhuận
• Chiến lược đầu tư dài hạn

**🎯 Tư vấn cá nhân:**
• Quy hoạch tài chính cá nhân
• Chuẩn bị quỹ hưu trí
• Bảo hiểm và bảo vệ tài sản
• Giáo dục tài chính

Bạn muốn tư vấn về lĩnh vực nào cụ thể? Tôi sẽ đưa ra lời khuyên chi tiết nhất! 🤝`

const greetingText = `Chào bạn! 👋 Rất vui được gặp bạn! Tôi là AI Assistant của TV Bank - ngân hàng số hàng đầu Việt Nam.

**✨ Tôi có thể giúp bạn:**
• Trả lời mọi câu hỏi về dịch vụ ngân hàng
• Tư vấn tài chính cá nhân và doanh nghiệp
• Hướng dẫn thủ tục và quy trình
• Chia sẻ kiến thức về đầu tư, tiết kiệm
• Trò chuyện về các chủ đề khác nhau

**🎯 Bạn có thể hỏi tôi về:**
- Vay vốn và tín dụng 💰
- Tiết kiệm và đầu tư 📈
- Dịch vụ thanh toán 💳
- Quản lý rủi ro ⚠️
- Hoặc bất kỳ chủ đề nào khác! 🌟

Hôm nay bạn cần tôi hỗ trợ điều gì? Cứ thoải mái chia sẻ nhé! 😊`

const loanText = `Chào bạn! 👋 Tôi sẽ hỗ trợ bạn về dịch vụ vay vốn tại TV Bank:

**💰 Các sản phẩm vay vốn:**
• Vay tín chấp: Không cần tài sản đảm bảo
• Vay thế chấp: Lãi suất ưu đãi với TSĐB
• Vay kinh doanh: Hỗ trợ phát triển doanh nghiệp
• Vay nông nghiệp: Lãi suất từ 6.5%/năm

**📋 Thủ tục đơn giản:**
1. Chuẩn bị hồ sơ (CMND, chứng minh thu nhập)
2. Nộp hồ sơ tại chi nhánh hoặc online
3. Thẩm định và phê duyệt trong 5-7 ngày
4. Giải ngân nhanh chóng

Bạn quan tâm đến loại hình vay nào? Tôi sẽ tư vấn chi tiết! 🤝`

const savingsText = `Chào bạn! 💰 TV Bank có nhiều sản phẩm tiết kiệm hấp dẫn:

**📊 Lãi suất cạnh tranh:**
• Không kỳ hạn: 0.5%/năm
• Có kỳ hạn 6 tháng: 5.8%/năm
• Có kỳ hạn 12 tháng: 6.5%/năm
• Tích lũy định kỳ: 6.8%/năm

**✨ Ưu điểm:**
• Linh hoạt rút tiền
• Lãi suất cao, ổn định
• Thủ tục nhanh gọn
• Bảo mật tuyệt đối

Bạn muốn tìm hiểu về sản phẩm tiết kiệm nào? 😊`

const transfersText = `Xin chào! 💳 TV Bank cung cấp đa dạng dịch vụ thanh toán hiện đại và tiện lợi:

**🌐 Internet Banking TV Bank:**
• Chuyển khoản trong và ngoài ngân hàng 24/7
• Thanh toán hóa đơn điện, nước, internet, điện thoại
• Nạp tiền điện thoại và thẻ game
• Kiểm tra số dư và lịch sử giao dịch
• Mở sổ tiết kiệm online

**Phí dịch vụ:**
• Chuyển khoản nội bộ TV Bank: MIỄN PHÍ
• Chuyển khoản liên ngân hàng: 5.500 VNĐ/giao dịch
• Thanh toán hóa đơn: 2.200 VNĐ/giao dịch

**📱 Mobile Banking TV Bank:**
• Giao diện thân thiện, dễ sử dụng
• Đăng nhập bằng vân tay/Face ID
• Nhận thông báo giao dịch realtime
• QR Pay - thanh toán bằng mã QR

Bạn muốn đăng ký dịch vụ nào? Tôi có thể hướng dẫn chi tiết hơn! 📞`

const cardsText = `Chào bạn! 💳 Thẻ ATM TV Bank mang đến nhiều tiện ích:

**🎯 Ưu đãi nổi bật:**
• Rút tiền miễn phí tại hơn 16.000 ATM toàn quốc
• Miễn phí phát hành thẻ lần đầu
• Thanh toán tại POS và mua sắm online
• Liên kết ví điện tử phổ biến

**📋 Thủ tục phát hành:**
1. Mang CMND/CCCD gốc đến chi nhánh gần nhất
2. Điền form đăng ký mở thẻ
3. Nhận thẻ sau 3-5 ngày làm việc
4. Kích hoạt và đổi mã PIN tại ATM

**🔒 Lưu ý bảo mật:**
• Không chia sẻ mã PIN cho bất kỳ ai
• Khóa thẻ ngay qua hotline 1900 6060 khi thất lạc

Bạn cần hỗ trợ thêm về dịch vụ thẻ nào không? 😊`

const insuranceText = `Chào bạn! 🛡️ TV Bank phối hợp cung cấp các sản phẩm bảo hiểm đa dạng:

**💼 Sản phẩm chính:**
• Bảo hiểm nhân thọ kết hợp tiết kiệm
• Bảo hiểm sức khỏe cho cá nhân và gia đình
• Bảo hiểm khoản vay - bảo vệ người vay vốn
• Bảo hiểm tài sản, nhà cửa

**✨ Quyền lợi:**
• Phí linh hoạt theo khả năng tài chính
• Thủ tục bồi thường nhanh gọn
• Tư vấn miễn phí tại mọi chi nhánh

Bạn muốn tìm hiểu sản phẩm bảo hiểm nào? Tôi sẽ tư vấn chi tiết cho bạn! 🤝`

const defaultText = `Chào bạn! 👋 Cảm ơn bạn đã liên hệ với TV Bank AI Assistant.

Tôi có thể giúp bạn về:
• Dịch vụ ngân hàng và tài chính 🏦
• Tư vấn và giải đáp thắc mắc 💡
• Thông tin sản phẩm dịch vụ 📋
• Và nhiều chủ đề khác nữa! 🌟

Bạn có câu hỏi gì cụ thể? Tôi sẽ trả lời một cách chi tiết nhất! 😊

**📞 Liên hệ nhanh:**
• Hotline: 1900 6060 (24/7)
• Website: tvbank.com.vn
• Hơn 200 chi nhánh toàn quốc`
